package validation

import (
	"net/url"
	"strings"

	"yt-highlights/errors"
	"yt-highlights/youtube"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateVideoRef accepts a bare video ID or a YouTube watch URL and
// returns the canonical video ID.
func (v *Validator) ValidateVideoRef(ref string) (string, error) {
	const op = "Validator.ValidateVideoRef"

	if ref == "" {
		return "", errors.InvalidInput(op, nil, "Video URL or ID is required")
	}

	id, ok := youtube.ExtractVideoID(ref)
	if !ok {
		return "", errors.InvalidInput(op, nil, "Not a recognizable YouTube video URL or ID")
	}
	return id, nil
}

// ValidateURL performs URL validation for channel registration.
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	if urlStr == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	// Protocol validation
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	// Domain validation
	host := parsedURL.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}
