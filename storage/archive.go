// Package storage archives transcripts to an S3-compatible bucket. The
// archive is best-effort; the relational store remains the source of truth.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	pkgerrors "github.com/pkg/errors"

	"yt-highlights/config"
)

type ArchiveClient struct {
	client *s3.Client
	bucket string
}

func NewArchiveClient(cfg config.ArchiveConfig) (*ArchiveClient, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.Endpoint,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "unable to load SDK config")
	}

	return &ArchiveClient{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

type archivedTranscript struct {
	Raw       string    `json:"raw"`
	Processed string    `json:"processed"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// SaveTranscript writes both transcript forms to
// transcripts/<video_id>.json, overwriting any prior archive entry.
func (a *ArchiveClient) SaveTranscript(ctx context.Context, videoID, raw, processed, model string) error {
	data := archivedTranscript{
		Raw:       raw,
		Processed: processed,
		Model:     model,
		Timestamp: time.Now(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal transcript")
	}

	key := fmt.Sprintf("transcripts/%s.json", videoID)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to archive transcript")
	}

	return nil
}

// GetTranscript reads an archived transcript back. Used by operational
// tooling; the API serves transcripts from the database.
func (a *ArchiveClient) GetTranscript(ctx context.Context, videoID string) (raw, processed string, err error) {
	key := fmt.Sprintf("transcripts/%s.json", videoID)
	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", "", pkgerrors.Wrap(err, "failed to get archived transcript")
	}
	defer result.Body.Close()

	var data archivedTranscript
	if err := json.NewDecoder(result.Body).Decode(&data); err != nil {
		return "", "", pkgerrors.Wrap(err, "failed to decode archived transcript")
	}

	return data.Raw, data.Processed, nil
}
