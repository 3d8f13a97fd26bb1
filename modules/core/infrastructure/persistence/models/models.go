package models

import "time"

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Upload struct {
	ID        string
	Name      string
	Path      string
	Hash      string
	Size      int64
	Mimetype  string
	CreatedAt time.Time
}
