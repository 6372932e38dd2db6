package models

// VideoResponse represents the API response for a video
type VideoResponse struct {
	ID          string `json:"id"`
	ChannelID   string `json:"channel_id,omitempty"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	Status      Status `json:"status"`
	Error       string `json:"error,omitempty"`
}

// NewVideoResponse creates a response from a video model
func NewVideoResponse(v *Video) *VideoResponse {
	return &VideoResponse{
		ID:        v.ID,
		ChannelID: v.ChannelID,
		URL:       v.URL,
		Title:     v.Title,
		Duration:  v.Duration,
		Status:    v.Status,
		Error:     v.Error,
	}
}

// HighlightResponse represents the API response for a highlight. The source
// prompt is omitted; reviewers only see the generated content.
type HighlightResponse struct {
	ID            string       `json:"id"`
	VideoID       string       `json:"video_id"`
	Content       string       `json:"content"`
	ReviewStatus  ReviewStatus `json:"review_status"`
	ReviewComment string       `json:"review_comment,omitempty"`
}

func NewHighlightResponse(h *Highlight) *HighlightResponse {
	return &HighlightResponse{
		ID:            h.ID,
		VideoID:       h.VideoID,
		Content:       h.Content,
		ReviewStatus:  h.ReviewStatus,
		ReviewComment: h.ReviewComment,
	}
}
