package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/deppfellow/bookstore/internal/config"
	"github.com/deppfellow/bookstore/internal/database"
	"github.com/deppfellow/bookstore/internal/middleware"
	"github.com/deppfellow/bookstore/internal/model/book"
	"github.com/deppfellow/bookstore/internal/server"
	"github.com/deppfellow/bookstore/internal/storeerr"
)

// testMongoURIEnv points the integration tests at a disposable deployment.
const testMongoURIEnv = "BOOKSTORE_TEST_MONGO_URI"

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()

	parsed, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	for _, id := range []string{"not-an-id", "123", "", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseID(id)
		assert.ErrorIs(t, err, book.ErrInvalidID, id)
		assert.Equal(t, storeerr.Other, storeerr.ErrCode(err))
	}
}

func TestBookRepository_LogsStoreFailures(t *testing.T) {
	client, err := mongo.Connect(options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(50 * time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := &BookRepository{
		collection: client.Database("bookstore").Collection("books"),
		now:        time.Now,
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("request_id", "req-7").Logger()
	ctx, cancel := context.WithCancel(middleware.WithLogger(context.Background(), &logger))
	cancel()

	err = repo.DeleteBook(ctx, bson.NewObjectID().Hex())
	require.Error(t, err)
	assert.NotErrorIs(t, err, book.ErrNotFound)

	var storeErr *storeerr.Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete_one", storeErr.Op)

	out := buf.String()
	assert.Contains(t, out, `"op":"delete_one"`)
	assert.Contains(t, out, `"collection":"books"`)
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.Contains(t, out, "store operation failed")
}

func year(y int) *book.Year { return book.NewYear(y) }

func newIntegrationRepo(t *testing.T) *BookRepository {
	t.Helper()

	uri := os.Getenv(testMongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set", testMongoURIEnv)
	}

	cfg := config.Default()
	cfg.Database.URI = uri
	cfg.Database.Name = fmt.Sprintf("bookstore_test_%d", time.Now().UnixNano())

	logger := zerolog.Nop()
	db, err := database.New(cfg, &logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.DB.Drop(ctx)
		_ = db.Close(ctx)
	})

	return NewBookRepository(&server.Server{Config: cfg, Logger: &logger, DB: db})
}

func TestBookRepository_Lifecycle(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	books, err := repo.GetBooks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	created, err := repo.CreateBook(ctx, &book.CreateBookPayload{Fields: book.Fields{
		Title: "Dune", Author: "Frank Herbert", PublishYear: year(1965),
	}})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := repo.GetBookByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, found)

	updated, err := repo.UpdateBook(ctx, created.ID.Hex(), &book.UpdateBookPayload{Fields: book.Fields{
		Title: "Dune Messiah", Author: "Frank Herbert", PublishYear: year(1969),
	}})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 1969, updated.PublishYear)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	books, err = repo.GetBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune Messiah", books[0].Title)

	require.NoError(t, repo.DeleteBook(ctx, created.ID.Hex()))

	_, err = repo.GetBookByID(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestBookRepository_ZeroYearIsStored(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	created, err := repo.CreateBook(ctx, &book.CreateBookPayload{Fields: book.Fields{
		Title: "Fragments", Author: "Anonymous", PublishYear: year(0),
	}})
	require.NoError(t, err)

	found, err := repo.GetBookByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, found.PublishYear)
}

func TestBookRepository_Missing(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()
	missing := bson.NewObjectID().Hex()

	_, err := repo.GetBookByID(ctx, missing)
	assert.ErrorIs(t, err, book.ErrNotFound)

	_, err = repo.UpdateBook(ctx, missing, &book.UpdateBookPayload{Fields: book.Fields{
		Title: "x", Author: "y", PublishYear: year(1),
	}})
	assert.ErrorIs(t, err, book.ErrNotFound)

	err = repo.DeleteBook(ctx, missing)
	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestBookRepository_MalformedID(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	_, err := repo.GetBookByID(ctx, "abc")
	assert.ErrorIs(t, err, book.ErrInvalidID)

	err = repo.DeleteBook(ctx, "abc")
	assert.True(t, errors.Is(err, book.ErrInvalidID))
}
