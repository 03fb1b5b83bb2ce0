package repository

import (
	"tourdesk/internal/database"
)

type Repositories struct {
	Shows *ShowRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Shows: NewShowRepository(db),
	}
}
