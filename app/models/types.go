package models

import "time"

// Author is the person a post is attributed to.
type Author struct {
	FirstName string `json:"firstName" bson:"firstName" validate:"required"`
	LastName  string `json:"lastName" bson:"lastName" validate:"required"`
}

// Post represents a stored blog post.
type Post struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author" validate:"required"`
	Title     string    `json:"title" validate:"required,max=200"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created" validate:"required"`
}

// PostInput is the body accepted when creating a post.
type PostInput struct {
	Author  *Author `json:"author" validate:"required"`
	Title   string  `json:"title" validate:"required,max=200"`
	Content string  `json:"content" validate:"required"`
}

// PostUpdate is the body accepted when updating a post. Nil fields are left
// untouched.
type PostUpdate struct {
	ID      string  `json:"id,omitempty"`
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// SerializedPost is the representation returned to API clients. The author is
// flattened to a single display string.
type SerializedPost struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created"`
}
