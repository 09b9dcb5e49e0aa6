package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/deppfellow/bookstore/internal/middleware"
	"github.com/deppfellow/bookstore/internal/model"
	"github.com/deppfellow/bookstore/internal/model/book"
	"github.com/deppfellow/bookstore/internal/server"
	"github.com/deppfellow/bookstore/internal/storeerr"
)

type BookRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
	now        func() time.Time
}

func NewBookRepository(s *server.Server) *BookRepository {
	return &BookRepository{
		collection: s.DB.Collection(s.Config.Database.BooksCollection),
		timeout:    s.DB.OperationTimeout,
		now:        time.Now,
	}
}

// withTimeout bounds a single store call so a stalled deployment cannot
// hold a request open forever.
func (r *BookRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// wrap classifies a driver error and logs it with the request-scoped
// logger, so store failures carry the request_id of the call that hit them.
func (r *BookRepository) wrap(ctx context.Context, err error, op string) error {
	wrapped := storeerr.Wrap(err, r.collection.Name(), op)

	middleware.LoggerFromContext(ctx).Error().
		Err(err).
		Str("collection", r.collection.Name()).
		Str("op", op).
		Str("code", string(storeerr.ErrCode(wrapped))).
		Msg("store operation failed")

	return wrapped
}

func (r *BookRepository) CreateBook(ctx context.Context, payload *book.CreateBookPayload) (*book.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	created := &book.Book{
		Base:        model.NewBase(r.now()),
		Title:       payload.Title,
		Author:      payload.Author,
		PublishYear: payload.Year(),
	}

	if _, err := r.collection.InsertOne(ctx, created); err != nil {
		return nil, errors.Wrapf(r.wrap(ctx, err, "insert"), "failed to insert book %q", created.Title)
	}

	return created, nil
}

// GetBooks returns every stored book in natural order. The slice is empty,
// never nil, when the collection has no documents.
func (r *BookRepository) GetBooks(ctx context.Context) ([]book.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(r.wrap(ctx, err, "find"), "failed to list books")
	}

	books := make([]book.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, errors.Wrap(r.wrap(ctx, err, "find"), "failed to decode books")
	}

	return books, nil
}

func (r *BookRepository) GetBookByID(ctx context.Context, id string) (*book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var found book.Book
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(book.ErrNotFound, "book %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(r.wrap(ctx, err, "find_one"), "failed to get book %s", id)
	}

	return &found, nil
}

// UpdateBook replaces the writable fields of the book and returns the
// document as it is after the update.
func (r *BookRepository) UpdateBook(ctx context.Context, id string, payload *book.UpdateBookPayload) (*book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: payload.Title},
		{Key: "author", Value: payload.Author},
		{Key: "publishYear", Value: payload.Year()},
		{Key: "updatedAt", Value: model.Timestamp(r.now())},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated book.Book
	err = r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(book.ErrNotFound, "book %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(r.wrap(ctx, err, "find_one_and_update"), "failed to update book %s", id)
	}

	return &updated, nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return errors.Wrapf(r.wrap(ctx, err, "delete_one"), "failed to delete book %s", id)
	}

	if result.DeletedCount == 0 {
		return errors.Wrapf(book.ErrNotFound, "book %s", id)
	}

	return nil
}

// parseID converts a path id into an ObjectID.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, errors.Wrapf(book.ErrInvalidID, "cast to ObjectID failed for value %q", id)
	}
	return oid, nil
}
