package model

import "time"

// Comment belongs to exactly one Instance. Edited flips to true only on a
// successful content update; only the author may update.
type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	InstanceID string    `json:"instance_id"`
	AuthorID   string    `json:"author_id"`
	Edited     bool      `json:"edited"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommentWithAuthor enriches a Comment with a minimal author projection.
type CommentWithAuthor struct {
	Comment
	Author UserSummary `json:"author"`
}
