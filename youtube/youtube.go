// Package youtube fetches video metadata and time-coded caption transcripts
// from YouTube watch pages.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"

	contextSection    = "*** Background Context ***"
	transcriptSection = "*** Transcript ***"
)

var (
	videoIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	videoURLPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`)
	shortURLPattern = regexp.MustCompile(`(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`)

	// ytInitialPlayerResponse carries videoDetails and the caption track
	// list. YouTube's page structure changes occasionally; this is the
	// first place to look when transcript retrieval breaks.
	playerResponsePattern = regexp.MustCompile(`var\s+ytInitialPlayerResponse\s*=\s*(\{.+?\});`)

	ttmlLinePattern = regexp.MustCompile(`<p\s+begin="([^"]+)"\s+end="([^"]+)"[^>]*>(.*?)</p>`)
	xmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
	descTimePattern = regexp.MustCompile(`^\d+:\d+`)
)

// ErrNoCaptions is terminal: retrying cannot produce captions for a video
// that has none.
var ErrNoCaptions = errors.New("no captions available for this video")

// Metadata is the subset of watch-page videoDetails the service persists.
type Metadata struct {
	VideoID     string
	Title       string
	ChannelID   string
	ChannelName string
	Duration    int
	Description string
}

type Client struct {
	httpClient *http.Client
	retries    int
	logger     *logrus.Logger
}

func NewClient(retries int) *Client {
	if retries <= 0 {
		retries = 3
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retries:    retries,
		logger:     logrus.StandardLogger(),
	}
}

// ExtractVideoID accepts a bare 11-character video ID, a watch URL, or a
// youtu.be short URL.
func ExtractVideoID(idOrURL string) (string, bool) {
	if videoIDPattern.MatchString(idOrURL) {
		return idOrURL, true
	}
	if m := videoURLPattern.FindStringSubmatch(idOrURL); m != nil {
		return m[1], true
	}
	if m := shortURLPattern.FindStringSubmatch(idOrURL); m != nil {
		return m[1], true
	}
	return "", false
}

// playerResponse mirrors the parts of ytInitialPlayerResponse we consume.
type playerResponse struct {
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		LengthSeconds    string `json:"lengthSeconds"`
		ChannelID        string `json:"channelId"`
		Author           string `json:"author"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// FetchMetadata scrapes the watch page for the video's details.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	pr, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	duration, _ := strconv.Atoi(pr.VideoDetails.LengthSeconds)
	return &Metadata{
		VideoID:     pr.VideoDetails.VideoID,
		Title:       pr.VideoDetails.Title,
		ChannelID:   pr.VideoDetails.ChannelID,
		ChannelName: pr.VideoDetails.Author,
		Duration:    duration,
		Description: pr.VideoDetails.ShortDescription,
	}, nil
}

// FetchTranscript downloads and formats the video's caption track as one
// string: a context block followed by "[MM:SS -> MM:SS] text" lines.
// Transient fetch failures are retried; missing captions are not.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second):
			}
		}

		raw, err := c.fetchTranscriptOnce(ctx, videoID)
		if err == nil {
			return raw, nil
		}
		if errors.Is(err, ErrNoCaptions) {
			return "", err
		}

		c.logger.WithFields(logrus.Fields{
			"video_id": videoID,
			"attempt":  attempt + 1,
		}).WithError(err).Warn("Transcript fetch failed")
		lastErr = err
	}

	return "", errors.Wrap(lastErr, "failed to fetch transcript")
}

func (c *Client) fetchTranscriptOnce(ctx context.Context, videoID string) (string, error) {
	pr, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return "", err
	}

	track, err := pickCaptionTrack(pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks)
	if err != nil {
		return "", err
	}

	// Request TTML so timestamps come back in a parseable XML form.
	ttmlURL := track.BaseURL
	if strings.Contains(ttmlURL, "?") {
		ttmlURL += "&fmt=ttml"
	} else {
		ttmlURL += "?fmt=ttml"
	}

	body, err := c.get(ctx, ttmlURL)
	if err != nil {
		return "", errors.Wrap(err, "caption track download failed")
	}

	lines := ParseTTML(string(body))
	if lines == "" {
		return "", errors.New("caption track contained no usable lines")
	}

	header := contextBlock(pr.VideoDetails.Title, pr.VideoDetails.ShortDescription)
	return header + "\n" + transcriptSection + "\n" + lines, nil
}

func (c *Client) fetchPlayerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	body, err := c.get(ctx, fmt.Sprintf(watchURLFormat, videoID))
	if err != nil {
		return nil, errors.Wrap(err, "watch page fetch failed")
	}

	m := playerResponsePattern.FindSubmatch(body)
	if m == nil {
		return nil, errors.New("player response not found in watch page")
	}

	var pr playerResponse
	if err := json.Unmarshal(m[1], &pr); err != nil {
		return nil, errors.Wrap(err, "failed to decode player response")
	}

	return &pr, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// pickCaptionTrack prefers manually authored English captions over
// auto-generated ("asr") ones.
func pickCaptionTrack(tracks []captionTrack) (*captionTrack, error) {
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	var auto *captionTrack
	for i := range tracks {
		t := &tracks[i]
		if t.LanguageCode != "en" && !strings.HasPrefix(t.LanguageCode, "en-") {
			continue
		}
		if t.Kind == "asr" {
			if auto == nil {
				auto = t
			}
			continue
		}
		return t, nil
	}
	if auto != nil {
		return auto, nil
	}

	return nil, ErrNoCaptions
}

// ParseTTML converts a TTML caption document into "[MM:SS -> MM:SS] text"
// lines, one per caption. Lines with unparseable timestamps are skipped.
func ParseTTML(xmlText string) string {
	matches := ttmlLinePattern.FindAllStringSubmatch(xmlText, -1)

	var formatted []string
	for _, m := range matches {
		start, err := parseTimestamp(m[1])
		if err != nil {
			continue
		}
		end, err := parseTimestamp(m[2])
		if err != nil {
			continue
		}

		text := xmlTagPattern.ReplaceAllString(m[3], "")
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}

		formatted = append(formatted, fmt.Sprintf("[%s -> %s] %s", formatClock(start), formatClock(end), text))
	}

	return strings.Join(formatted, "\n")
}

// parseTimestamp converts "HH:MM:SS.mmm" or "MM:SS.mmm" to seconds.
func parseTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	switch len(parts) {
	case 3:
		h, err1 := strconv.ParseFloat(parts[0], 64)
		m, err2 := strconv.ParseFloat(parts[1], 64)
		s, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("invalid timestamp: %s", ts)
		}
		return h*3600 + m*60 + s, nil
	case 2:
		m, err1 := strconv.ParseFloat(parts[0], 64)
		s, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("invalid timestamp: %s", ts)
		}
		return m*60 + s, nil
	default:
		return 0, fmt.Errorf("invalid timestamp: %s", ts)
	}
}

// formatClock renders seconds as MM:SS, or HH:MM:SS past the first hour.
func formatClock(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// contextBlock prefixes the transcript with title, the description's first
// paragraph, and any timestamp lines so the copyedit pass has context.
func contextBlock(title, description string) string {
	if description == "" {
		return fmt.Sprintf("%s\nTitle: %s\nDescription: No description available\n", contextSection, title)
	}

	firstParagraph := strings.TrimSpace(strings.SplitN(description, "\n\n", 2)[0])

	var timestamps []string
	for _, line := range strings.Split(description, "\n") {
		if descTimePattern.MatchString(strings.TrimSpace(line)) {
			timestamps = append(timestamps, line)
		}
	}
	timestampBlock := "No timestamps available"
	if len(timestamps) > 0 {
		timestampBlock = strings.Join(timestamps, "\n")
	}

	return fmt.Sprintf("%s\nTitle: %s\nDescription: %s\n\nTimestamps:\n%s\n",
		contextSection, title, firstParagraph, timestampBlock)
}
