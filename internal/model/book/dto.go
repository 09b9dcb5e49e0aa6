package book

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field errors under their wire names: the json
// name for body fields and the param name for path fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		if name := fld.Tag.Get("param"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// ErrYearNotWhole is returned when publishYear is not a whole JSON number.
var ErrYearNotWhole = errors.New("publishYear must be a whole number")

// Year is a publish year as sent by clients. Any JSON number with no
// fractional part is accepted, so 1965 and 1965.0 decode alike.
type Year int

// NewYear returns a pointer to y, for filling Fields literals.
func NewYear(y int) *Year {
	v := Year(y)
	return &v
}

func (y *Year) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		return ErrYearNotWhole
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return ErrYearNotWhole
	}

	*y = Year(f)
	return nil
}

// Fields holds the three writable attributes shared by create and update.
//
// PublishYear is a pointer so an absent or null year can be told apart from
// an explicit 0, which is accepted.
type Fields struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	PublishYear *Year  `json:"publishYear" validate:"required"`
}

// Year returns the publish year, or 0 when absent.
func (f Fields) Year() int {
	if f.PublishYear == nil {
		return 0
	}
	return int(*f.PublishYear)
}

// ------------------------------------------------------------

type CreateBookPayload struct {
	Fields
}

func (p *CreateBookPayload) Validate() error {
	return validate.Struct(p)
}

// ValidationMessage is the message sent with a 400 response.
func (p *CreateBookPayload) ValidationMessage() string {
	return MsgMissingFields
}

// ------------------------------------------------------------

type GetBooksPayload struct{}

func (p *GetBooksPayload) Validate() error {
	return nil
}

// GetBooksResponse is the list envelope.
type GetBooksResponse struct {
	Count int    `json:"count"`
	Data  []Book `json:"data"`
}

// ------------------------------------------------------------

// GetBookByIDPayload carries the raw path id. It is intentionally not
// checked for ObjectID format here: malformed ids reach the repository and
// surface as store errors.
type GetBookByIDPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *GetBookByIDPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type UpdateBookPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
	Fields
}

func (p *UpdateBookPayload) Validate() error {
	return validate.Struct(p)
}

func (p *UpdateBookPayload) ValidationMessage() string {
	return MsgMissingFields
}

// UpdateBookResponse is returned after a successful update.
type UpdateBookResponse struct {
	Message string `json:"message"`
	Book    *Book  `json:"book"`
}

// ------------------------------------------------------------

type DeleteBookPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *DeleteBookPayload) Validate() error {
	return validate.Struct(p)
}

// MessageResponse is a body made of a single message.
type MessageResponse struct {
	Message string `json:"message"`
}
