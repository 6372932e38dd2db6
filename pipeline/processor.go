package pipeline

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"yt-highlights/transcript"
)

// ProcessTranscript copyedits a raw time-coded transcript. The transcript is
// partitioned, every partition is sent through the generation client
// concurrently, and the results are joined back in partition order with a
// blank line between them.
//
// The whole call fails if any partition fails; a silently missing partition
// would corrupt downstream highlight timing.
func (p *Pipeline) ProcessTranscript(ctx context.Context, raw string) (string, error) {
	partitions := transcript.Segment(raw, p.config.LinesPerPartition)
	if len(partitions) == 0 {
		return "", nil
	}

	p.logger.WithFields(logrus.Fields{
		"partitions": len(partitions),
		"model":      p.config.Model,
	}).Info("Processing transcript")

	results, err := p.generatePartitions(ctx, partitions, CopyeditRole, p.config.CopyeditTemperature)
	if err != nil {
		return "", err
	}

	return strings.Join(results, "\n\n"), nil
}
