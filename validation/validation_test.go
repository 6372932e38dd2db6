package validation

import (
	"testing"
)

func TestValidateVideoRef(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr bool
	}{
		{
			name:   "Bare video ID",
			ref:    "dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "Watch URL",
			ref:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "Short URL",
			ref:    "https://youtu.be/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:    "Empty",
			ref:     "",
			wantErr: true,
		},
		{
			name:    "Garbage",
			ref:     "not a video",
			wantErr: true,
		},
		{
			name:    "Non-YouTube URL",
			ref:     "https://vimeo.com/123456",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := validator.ValidateVideoRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name: "Channel URL",
			url:  "https://www.youtube.com/@somechannel",
		},
		{
			name: "Watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:    "Empty URL",
			url:     "",
			wantErr: true,
		},
		{
			name:    "Non-HTTP scheme",
			url:     "ftp://youtube.com/video",
			wantErr: true,
		},
		{
			name:    "JavaScript URL",
			url:     "javascript:alert(1)",
			wantErr: true,
		},
		{
			name:    "Non-YouTube host",
			url:     "https://example.com/watch",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
