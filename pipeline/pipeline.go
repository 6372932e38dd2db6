// Package pipeline fans transcript partitions out to the generation client
// and reassembles results in partition order.
package pipeline

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"yt-highlights/config"
	"yt-highlights/llm"
	"yt-highlights/transcript"
)

type Pipeline struct {
	generator llm.Generator
	config    Config
	logger    *logrus.Logger
}

type Config struct {
	Model                string
	MaxTokens            int
	CopyeditTemperature  float64
	HighlightTemperature float64
	LinesPerPartition    int
	MaxConcurrent        int
}

func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Model:                cfg.LLM.Model,
		MaxTokens:            cfg.LLM.MaxTokens,
		CopyeditTemperature:  cfg.LLM.CopyeditTemperature,
		HighlightTemperature: cfg.LLM.HighlightTemperature,
		LinesPerPartition:    cfg.Pipeline.LinesPerPartition,
		MaxConcurrent:        cfg.Pipeline.MaxConcurrent,
	}
}

func New(generator llm.Generator, cfg Config) *Pipeline {
	if cfg.LinesPerPartition <= 0 {
		cfg.LinesPerPartition = transcript.DefaultLinesPerPartition
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 8
	}
	return &Pipeline{
		generator: generator,
		config:    cfg,
		logger:    logrus.StandardLogger(),
	}
}

// generatePartitions dispatches one generation call per partition, all
// concurrent up to MaxConcurrent, and waits for every call to resolve.
// Results land in slots indexed by partition number, so output order never
// depends on completion order. If any partition fails, the error returned
// is the one with the lowest partition index.
func (p *Pipeline) generatePartitions(
	ctx context.Context,
	partitions []string,
	systemRole string,
	temperature float64,
) ([]string, error) {
	results := make([]string, len(partitions))
	errs := make([]error, len(partitions))

	sem := semaphore.NewWeighted(int64(p.config.MaxConcurrent))
	var wg sync.WaitGroup

	for i, part := range partitions {
		wg.Add(1)
		go func(i int, part string) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				errs[i] = err
				return
			}
			defer sem.Release(1)

			results[i], errs[i] = p.generator.Generate(ctx, llm.Request{
				SystemRole:  systemRole,
				Prompt:      part,
				Model:       p.config.Model,
				MaxTokens:   p.config.MaxTokens,
				Temperature: temperature,
			})
		}(i, part)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"partition": i,
				"total":     len(partitions),
			}).WithError(err).Error("Partition generation failed")
			return nil, err
		}
	}

	return results, nil
}
