package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/bookstore/internal/errs"
)

// HandleError converts an error into an application-level HTTP error.
//
//   - *errs.HTTPError: returned unchanged
//   - *Error with DuplicateKey: 400
//   - any other *Error: 500 carrying the full error text and a code scoped
//     to the collection, e.g. BOOK_TIMEOUT or BOOK_UNAVAILABLE
//   - anything else: generic 500 that hides the cause
func HandleError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var storeErr *Error
	if !errors.As(err, &storeErr) {
		return errs.NewInternalServerError()
	}

	errorCode := generateErrorCode(storeErr.Collection, storeErr.Code)

	if storeErr.Code == DuplicateKey {
		return errs.NewBadRequestError(
			fmt.Sprintf("A %s with this identifier already exists", getEntityName(storeErr.Collection)),
			&errorCode, nil)
	}

	failure := errs.NewInternalServerError().WithMessage(err.Error())
	failure.Code = errorCode
	return failure
}

// generateErrorCode creates codes of the form <ENTITY>_<ACTION>,
// e.g. books + DuplicateKey => BOOK_ALREADY_EXISTS.
func generateErrorCode(collection string, code Code) string {
	domain := strings.ToUpper(singular(collection))
	if domain == "" {
		domain = "RECORD"
	}

	action := "STORE_ERROR"
	switch code {
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case Timeout:
		action = "TIMEOUT"
	case Network:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// getEntityName turns a collection name into a human entity name:
// "books" -> "Book", "reading_lists" -> "Reading List".
func getEntityName(collection string) string {
	if collection == "" {
		return "Record"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(singular(collection), "_", " "))
}

func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}
