package registry

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Kind classifies registry failures. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindStoreFailure Kind = iota
	KindNotFound
	KindDuplicateKey
	KindReferentialConflict
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindDuplicateKey:
		return "duplicate key"
	case KindReferentialConflict:
		return "referential conflict"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "store failure"
	}
}

// Error is returned by every registry operation that fails.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrDuplicateKey        = &Error{Kind: KindDuplicateKey}
	ErrReferentialConflict = &Error{Kind: KindReferentialConflict}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrStoreFailure        = &Error{Kind: KindStoreFailure}
)

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Entity != "" {
		return e.Entity + ": " + e.Kind.String()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match against a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Entity == "" && t.Message == ""
}

func notFound(entity string, id uint) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

func invalidInput(entity string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

func conflict(entity string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindReferentialConflict, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

func duplicate(entity string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindDuplicateKey, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

// classify turns a raw store error into a typed *Error. Errors that are
// already typed pass through untouched.
func classify(err error, entity string) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Entity: entity, Message: entity + " not found", Err: err}
	case isUniqueViolation(err):
		msg := entity + " already exists"
		if field, ok := uniqueFields[entity]; ok {
			msg = fmt.Sprintf("%s with this %s already exists", entity, field)
		}
		return &Error{Kind: KindDuplicateKey, Entity: entity, Message: msg, Err: err}
	case isForeignKeyViolation(err):
		return &Error{Kind: KindReferentialConflict, Entity: entity, Message: entity + " is still referenced", Err: err}
	}
	return &Error{Kind: KindStoreFailure, Entity: entity, Message: entity + ": store failure", Err: err}
}

var uniqueFields = map[string]string{
	EntityBus:          "registration",
	EntityDriver:       "national_id",
	EntityShift:        "name",
	EntityStop:         "name",
	EntityLine:         "number",
	EntityRoute:        "name",
	EntityRouteVariant: "variant_code",
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
