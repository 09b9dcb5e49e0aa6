// Package book defines the Book entity, its request payloads and the
// errors the repository reports for it.
package book

import (
	"errors"

	"github.com/deppfellow/bookstore/internal/model"
)

// Book is the sole entity served by the API.
type Book struct {
	model.Base  `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Author      string `json:"author" bson:"author"`
	PublishYear int    `json:"publishYear" bson:"publishYear"`
}

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("book not found")

	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid book id")
)

// Messages returned to clients.
const (
	MsgMissingFields = "Send all required fields: title, author, publishYear"
	MsgNotFound      = "Book not found"
	MsgUpdated       = "Book updated successfully"
	MsgDeleted       = "Book deleted successfully"
	MsgDeleteFailed  = "Server error, could not delete book"
)
