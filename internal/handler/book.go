package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/bookstore/internal/errs"
	"github.com/deppfellow/bookstore/internal/model/book"
	"github.com/deppfellow/bookstore/internal/server"
	"github.com/deppfellow/bookstore/internal/service"
	"github.com/deppfellow/bookstore/internal/storeerr"
)

// codeBookNotFound is the error code sent with every 404 for a book id.
var codeBookNotFound = "BOOK_NOT_FOUND"

type BookHandler struct {
	Handler
	bookService *service.BookService
}

func NewBookHandler(s *server.Server, bookService *service.BookService) *BookHandler {
	return &BookHandler{
		Handler:     NewHandler(s),
		bookService: bookService,
	}
}

func (h *BookHandler) CreateBook(c echo.Context, payload *book.CreateBookPayload) (*book.Book, error) {
	created, err := h.bookService.CreateBook(c, payload)
	if err != nil {
		return nil, storeFailure(err)
	}
	return created, nil
}

func (h *BookHandler) GetBooks(c echo.Context, payload *book.GetBooksPayload) (*book.GetBooksResponse, error) {
	books, err := h.bookService.GetBooks(c)
	if err != nil {
		return nil, storeFailure(err)
	}

	return &book.GetBooksResponse{
		Count: len(books),
		Data:  books,
	}, nil
}

func (h *BookHandler) GetBookByID(c echo.Context, payload *book.GetBookByIDPayload) (*book.Book, error) {
	found, err := h.bookService.GetBookByID(c, payload.ID)
	if err != nil {
		return nil, lookupFailure(err)
	}
	return found, nil
}

func (h *BookHandler) UpdateBook(c echo.Context, payload *book.UpdateBookPayload) (*book.UpdateBookResponse, error) {
	updated, err := h.bookService.UpdateBook(c, payload.ID, payload)
	if err != nil {
		return nil, lookupFailure(err)
	}

	return &book.UpdateBookResponse{
		Message: book.MsgUpdated,
		Book:    updated,
	}, nil
}

// DeleteBook hides store failure details behind a fixed message.
func (h *BookHandler) DeleteBook(c echo.Context, payload *book.DeleteBookPayload) (*book.MessageResponse, error) {
	err := h.bookService.DeleteBook(c, payload.ID)
	switch {
	case err == nil:
		return &book.MessageResponse{Message: book.MsgDeleted}, nil
	case errors.Is(err, book.ErrNotFound):
		return nil, errs.NewNotFoundError(book.MsgNotFound, &codeBookNotFound)
	default:
		return nil, errs.NewInternalServerError().WithMessage(book.MsgDeleteFailed)
	}
}

// lookupFailure maps the outcome of an id-addressed operation.
func lookupFailure(err error) error {
	if errors.Is(err, book.ErrNotFound) {
		return errs.NewNotFoundError(book.MsgNotFound, &codeBookNotFound)
	}
	return storeFailure(err)
}

// storeFailure exposes the error text with a 500. Classified store errors
// also carry their category in the code (BOOK_TIMEOUT, BOOK_UNAVAILABLE);
// malformed ids and anything unclassified use INTERNAL_SERVER_ERROR.
func storeFailure(err error) error {
	var storeErr *storeerr.Error
	if errors.As(err, &storeErr) {
		return storeerr.HandleError(err)
	}
	return errs.NewInternalServerError().WithMessage(err.Error())
}
