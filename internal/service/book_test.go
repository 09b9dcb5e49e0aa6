package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/deppfellow/bookstore/internal/config"
	"github.com/deppfellow/bookstore/internal/model"
	"github.com/deppfellow/bookstore/internal/model/book"
	"github.com/deppfellow/bookstore/internal/server"
)

type mockBookStore struct {
	mock.Mock
}

func (m *mockBookStore) CreateBook(ctx context.Context, payload *book.CreateBookPayload) (*book.Book, error) {
	args := m.Called(ctx, payload)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookStore) GetBooks(ctx context.Context) ([]book.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]book.Book)
	return books, args.Error(1)
}

func (m *mockBookStore) GetBookByID(ctx context.Context, id string) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookStore) UpdateBook(ctx context.Context, id string, payload *book.UpdateBookPayload) (*book.Book, error) {
	args := m.Called(ctx, id, payload)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookStore) DeleteBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(store BookStore) *BookService {
	logger := zerolog.Nop()
	return NewBookService(&server.Server{Config: config.Default(), Logger: &logger}, store)
}

func newContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestBookService_CreateBook(t *testing.T) {
	store := &mockBookStore{}
	payload := &book.CreateBookPayload{Fields: book.Fields{Title: "Dune", Author: "Frank Herbert", PublishYear: book.NewYear(1965)}}
	want := &book.Book{Base: model.Base{ID: bson.NewObjectID()}, Title: "Dune", Author: "Frank Herbert", PublishYear: 1965}

	store.On("CreateBook", mock.Anything, payload).Return(want, nil).Once()

	got, err := newTestService(store).CreateBook(newContext(), payload)

	require.NoError(t, err)
	assert.Same(t, want, got)
	store.AssertExpectations(t)
}

func TestBookService_PropagatesErrors(t *testing.T) {
	store := &mockBookStore{}
	svc := newTestService(store)
	id := bson.NewObjectID().Hex()
	failure := errors.New("store unavailable")

	store.On("GetBooks", mock.Anything).Return(nil, failure).Once()
	store.On("GetBookByID", mock.Anything, id).Return(nil, book.ErrNotFound).Once()
	store.On("UpdateBook", mock.Anything, id, mock.Anything).Return(nil, book.ErrNotFound).Once()
	store.On("DeleteBook", mock.Anything, id).Return(book.ErrInvalidID).Once()

	_, err := svc.GetBooks(newContext())
	assert.ErrorIs(t, err, failure)

	_, err = svc.GetBookByID(newContext(), id)
	assert.ErrorIs(t, err, book.ErrNotFound)

	_, err = svc.UpdateBook(newContext(), id, &book.UpdateBookPayload{})
	assert.ErrorIs(t, err, book.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteBook(newContext(), id), book.ErrInvalidID)

	store.AssertExpectations(t)
}

func TestBookService_GetBooks(t *testing.T) {
	store := &mockBookStore{}
	books := []book.Book{{Title: "A"}, {Title: "B"}}
	store.On("GetBooks", mock.Anything).Return(books, nil).Once()

	got, err := newTestService(store).GetBooks(newContext())

	require.NoError(t, err)
	assert.Equal(t, books, got)
}

func TestBookService_DeleteBook(t *testing.T) {
	store := &mockBookStore{}
	id := bson.NewObjectID().Hex()
	store.On("DeleteBook", mock.Anything, id).Return(nil).Once()

	assert.NoError(t, newTestService(store).DeleteBook(newContext(), id))
	store.AssertExpectations(t)
}
