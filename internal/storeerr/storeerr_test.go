package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/deppfellow/bookstore/internal/errs"
)

func TestClassify(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

	assert.Equal(t, Timeout, Classify(fmt.Errorf("find: %w", context.DeadlineExceeded)))
	assert.Equal(t, DuplicateKey, Classify(dup))
	assert.Equal(t, Timeout, Classify(context.DeadlineExceeded))
	assert.Equal(t, Other, Classify(errors.New("boom")))
	assert.Equal(t, Other, Classify(nil))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "books", "insert"))

	driverErr := errors.New("server selection error")
	err := Wrap(driverErr, "books", "insert")

	assert.Equal(t, "server selection error", err.Error())
	assert.ErrorIs(t, err, driverErr)
	assert.Equal(t, Other, ErrCode(err))

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "insert", storeErr.Op)
	assert.Equal(t, "books", storeErr.Collection)

	assert.Same(t, err, Wrap(err, "other", "find"), "already classified errors are not re-wrapped")
}

func TestHandleError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "http error passes through",
			err:         errs.NewNotFoundError("Book not found", nil),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Book not found",
		},
		{
			name:        "duplicate key",
			err:         Wrap(dup, "books", "insert"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "BOOK_ALREADY_EXISTS",
			wantMessage: "A Book with this identifier already exists",
		},
		{
			name:        "timeout keeps the full message",
			err:         fmt.Errorf("failed to list books: %w", Wrap(context.DeadlineExceeded, "books", "find")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "BOOK_TIMEOUT",
			wantMessage: "failed to list books: context deadline exceeded",
		},
		{
			name:        "other store error",
			err:         Wrap(errors.New("connection refused"), "books", "find"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "BOOK_STORE_ERROR",
			wantMessage: "connection refused",
		},
		{
			name:        "unknown error hides the cause",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := HandleError(tt.err)

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
		})
	}
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "BOOK_UNAVAILABLE", generateErrorCode("books", Network))
	assert.Equal(t, "BOOK_TIMEOUT", generateErrorCode("books", Timeout))
	assert.Equal(t, "RECORD_STORE_ERROR", generateErrorCode("", Other))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Book", getEntityName("books"))
	assert.Equal(t, "Reading List", getEntityName("reading_lists"))
	assert.Equal(t, "Record", getEntityName(""))
}
