package service

import (
	"github.com/deppfellow/bookstore/internal/repository"
	"github.com/deppfellow/bookstore/internal/server"
)

type Services struct {
	Book *BookService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Book: NewBookService(s, repos.Book),
	}
}
