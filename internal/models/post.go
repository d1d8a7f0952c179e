package models

import "time"

// Post carries denormalized author fields so listings render without a
// join. Keywords is a comma-separated tag list; NULL means untagged.
type Post struct {
	ID        string
	UserID    string
	UserName  string
	UserImage string
	Title     string
	Summary   string
	Content   string
	Keywords  *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Comment struct {
	ID        string
	PostID    string
	UserID    string
	UserName  string
	UserImage string
	Content   string
	CreatedAt time.Time
}
