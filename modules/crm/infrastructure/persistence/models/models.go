package models

import "time"

type Lead struct {
	ID             string
	FullName       string
	Email          string
	Phone          string
	Company        string
	Message        string
	SourceFormName string
	SubmissionURL  string
	Status         string
	IPAddress      string
	SubmittedAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
