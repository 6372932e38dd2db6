package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"yt-highlights/llm"
	"yt-highlights/models"
	"yt-highlights/transcript"
)

// timestampMarker matches a bracketed time range like [02:03 -> 05:00] or
// [01:02:03 -> 01:05:00]; the hour component is optional on either side.
var timestampMarker = regexp.MustCompile(`\[(?:\d{1,2}:)?\d{2}:\d{2}\s*->\s*(?:\d{1,2}:)?\d{2}:\d{2}\]`)

// ExtractHighlights runs the highlight pass over a processed transcript and
// parses each partition's output into discrete candidates. Candidates are
// ordered by partition index, then top to bottom within a partition.
func (p *Pipeline) ExtractHighlights(ctx context.Context, processed string) ([]models.HighlightCandidate, error) {
	partitions := transcript.Segment(processed, p.config.LinesPerPartition)
	if len(partitions) == 0 {
		return nil, nil
	}

	p.logger.WithFields(logrus.Fields{
		"partitions": len(partitions),
		"model":      p.config.Model,
	}).Info("Extracting highlights")

	results, err := p.generatePartitions(ctx, partitions, HighlightRole, p.config.HighlightTemperature)
	if err != nil {
		return nil, err
	}

	var candidates []models.HighlightCandidate
	for i, raw := range results {
		for _, content := range splitCandidates(raw) {
			candidates = append(candidates, models.HighlightCandidate{
				Content:      content,
				SourcePrompt: partitions[i],
				SystemRole:   HighlightRole,
			})
		}
	}

	p.logger.WithField("candidates", len(candidates)).Info("Highlight extraction completed")
	return candidates, nil
}

// splitCandidates slices generated text at every timestamp marker. The split
// is a lookahead: each marker starts a new segment and stays attached to it.
// Preamble before the first marker and blank segments are dropped; model
// output formatting is best-effort, so unparseable text is never an error.
func splitCandidates(raw string) []string {
	locs := timestampMarker.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return nil
	}

	var segments []string
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if segment := strings.TrimSpace(raw[loc[0]:end]); segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}

// RegenerateHighlight re-issues generation for one stored prompt. The prompt
// is already one partition-sized chunk, so there is no fan-out. An empty
// systemRole falls back to the default highlight role. The returned
// candidate carries the prompt unchanged so it stays regenerable.
func (p *Pipeline) RegenerateHighlight(ctx context.Context, prompt, systemRole string) (models.HighlightCandidate, error) {
	if systemRole == "" {
		systemRole = HighlightRole
	}

	content, err := p.generator.Generate(ctx, llm.Request{
		SystemRole:  systemRole,
		Prompt:      prompt,
		Model:       p.config.Model,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.HighlightTemperature,
	})
	if err != nil {
		return models.HighlightCandidate{}, err
	}

	return models.HighlightCandidate{
		Content:      strings.TrimSpace(content),
		SourcePrompt: prompt,
		SystemRole:   systemRole,
	}, nil
}
