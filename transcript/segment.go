// Package transcript splits time-coded transcripts into bounded partitions
// for independent generation calls.
package transcript

import (
	"strings"
)

// DefaultLinesPerPartition approximates a five-minute span at roughly five
// seconds per caption line.
const DefaultLinesPerPartition = 60

// Segment splits text into partitions of at most linesPerPartition lines
// each, in order. The final partition may be shorter. Joining the result
// with "\n" reproduces the trimmed input exactly.
//
// Partition boundaries ignore sentence and timestamp structure; only the
// highlight parser assigns meaning to timestamps.
func Segment(text string, linesPerPartition int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if linesPerPartition <= 0 {
		linesPerPartition = DefaultLinesPerPartition
	}

	lines := strings.Split(text, "\n")
	partitions := make([]string, 0, (len(lines)+linesPerPartition-1)/linesPerPartition)
	for i := 0; i < len(lines); i += linesPerPartition {
		end := i + linesPerPartition
		if end > len(lines) {
			end = len(lines)
		}
		partitions = append(partitions, strings.Join(lines[i:end], "\n"))
	}

	return partitions
}
