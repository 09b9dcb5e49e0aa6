package repository

import (
	"github.com/deppfellow/bookstore/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Book *BookRepository
}

// NewRepositories constructs the repository container on the shared
// database handle in s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Book: NewBookRepository(s),
	}
}
