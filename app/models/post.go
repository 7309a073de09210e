package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// String renders the author as "First Last".
func (a Author) String() string {
	return a.FirstName + " " + a.LastName
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}

// Serialize returns the client-facing representation of the post.
func (p *Post) Serialize() SerializedPost {
	return SerializedPost{
		ID:        p.ID,
		Author:    p.Author.String(),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

// Apply overwrites the fields present in u. ID, Author and CreatedAt are never
// touched.
func (p *Post) Apply(u *PostUpdate) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
}

// Validate checks a create request body.
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// ToPost builds an unsaved post from the input.
func (in *PostInput) ToPost() *Post {
	p := &Post{
		Title:   in.Title,
		Content: in.Content,
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	return p
}

// Validate checks an update request body. At least one field must be set.
func (u *PostUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}
	if u.Title == nil && u.Content == nil {
		return errors.New("at least one of title or content is required")
	}
	return nil
}
