package repository

import "time"

// Message represents a message board row.
type Message struct {
	ID        string
	Author    string
	Content   string
	CreatedAt time.Time
}
