package domain

import "time"

type Project struct {
	ID        string
	Name      string
	Deadline  *time.Time // Calendar date (nullable)
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
