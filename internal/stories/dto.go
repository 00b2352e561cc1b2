package stories

import "time"

type storyResponse struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Date        string    `json:"date"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	YouTubeLink string    `json:"youtubeLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type storyDetailResponse struct {
	storyResponse
	ContentHTML string `json:"contentHtml"`
	YouTubeID   string `json:"youtubeId,omitempty"`
}

func imageURL(s Story) string {
	if s.ImageKey == "" {
		return ""
	}
	return "/api/v1/stories/" + s.ID + "/image"
}

func toResponse(s Story) storyResponse {
	return storyResponse{
		ID:          s.ID,
		AuthorID:    s.AuthorID,
		AuthorEmail: s.AuthorEmail,
		Title:       s.Title,
		Content:     s.Content,
		Excerpt:     s.Excerpt,
		Date:        s.Date,
		ImageURL:    imageURL(s),
		YouTubeLink: s.YouTubeLink,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
