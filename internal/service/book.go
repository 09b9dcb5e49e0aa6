package service

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/bookstore/internal/middleware"
	"github.com/deppfellow/bookstore/internal/model/book"
	"github.com/deppfellow/bookstore/internal/server"
)

// BookStore is the persistence the book service needs. It is satisfied by
// *repository.BookRepository.
type BookStore interface {
	CreateBook(ctx context.Context, payload *book.CreateBookPayload) (*book.Book, error)
	GetBooks(ctx context.Context) ([]book.Book, error)
	GetBookByID(ctx context.Context, id string) (*book.Book, error)
	UpdateBook(ctx context.Context, id string, payload *book.UpdateBookPayload) (*book.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

type BookService struct {
	server *server.Server
	store  BookStore
}

func NewBookService(s *server.Server, store BookStore) *BookService {
	return &BookService{
		server: s,
		store:  store,
	}
}

func (s *BookService) CreateBook(c echo.Context, payload *book.CreateBookPayload) (*book.Book, error) {
	logger := middleware.GetLogger(c)

	created, err := s.store.CreateBook(c.Request().Context(), payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create book")
		return nil, err
	}

	logger.Info().
		Str("event", "book_created").
		Str("book_id", created.ID.Hex()).
		Str("title", created.Title).
		Msg("book created")

	s.recordEvent(c, "book_created", created.ID.Hex())

	return created, nil
}

func (s *BookService) GetBooks(c echo.Context) ([]book.Book, error) {
	books, err := s.store.GetBooks(c.Request().Context())
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to list books")
		return nil, err
	}

	return books, nil
}

func (s *BookService) GetBookByID(c echo.Context, id string) (*book.Book, error) {
	found, err := s.store.GetBookByID(c.Request().Context(), id)
	if err != nil {
		middleware.GetLogger(c).Warn().Err(err).Str("book_id", id).Msg("failed to get book")
		return nil, err
	}

	return found, nil
}

func (s *BookService) UpdateBook(c echo.Context, id string, payload *book.UpdateBookPayload) (*book.Book, error) {
	logger := middleware.GetLogger(c)

	updated, err := s.store.UpdateBook(c.Request().Context(), id, payload)
	if err != nil {
		logger.Warn().Err(err).Str("book_id", id).Msg("failed to update book")
		return nil, err
	}

	logger.Info().
		Str("event", "book_updated").
		Str("book_id", id).
		Msg("book updated")

	s.recordEvent(c, "book_updated", id)

	return updated, nil
}

func (s *BookService) DeleteBook(c echo.Context, id string) error {
	logger := middleware.GetLogger(c)

	if err := s.store.DeleteBook(c.Request().Context(), id); err != nil {
		logger.Warn().Err(err).Str("book_id", id).Msg("failed to delete book")
		return err
	}

	logger.Info().
		Str("event", "book_deleted").
		Str("book_id", id).
		Msg("book deleted")

	s.recordEvent(c, "book_deleted", id)

	return nil
}

// recordEvent attaches the business event to the current New Relic
// transaction, if any.
func (s *BookService) recordEvent(c echo.Context, event, bookID string) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("book.event", event)
		txn.AddAttribute("book.id", bookID)
	}
}
