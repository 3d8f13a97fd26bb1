package models

import "time"

type Author struct {
	ID             string
	Name           string
	Slug           string
	Bio            string
	AvatarUploadID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Industry struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Post struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       string
	Content       []byte
	AuthorID      string
	CategoryID    *string
	CoverUploadID *string
	Published     bool
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CaseStudy struct {
	ID          string
	Title       string
	Slug        string
	Summary     string
	Content     []byte
	IndustryID  *string
	ClientName  string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
