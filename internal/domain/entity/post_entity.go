package entity

import "time"

// Post belongs to exactly one User.
type Post struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author is set when the post is built from an in-memory User; stores only read UserID.
	Author *User
}

// NewPost binds a post to its owning user.
func NewPost(author *User, title, body string) *Post {
	return &Post{UserID: author.ID, Title: title, Body: body, Author: author}
}
