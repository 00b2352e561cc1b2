package stories

import "time"

// Story is a personal career story written by a user.
type Story struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Date        string    `json:"date"`
	ImageKey    string    `json:"-"`
	YouTubeLink string    `json:"youtubeLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input carries the editable fields of a story.
type Input struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	YouTubeLink string `json:"youtubeLink"`
}
