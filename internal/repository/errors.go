package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var ErrRecordNotFound = errors.New("record not found")

// DuplicateError reports a unique constraint violation on a single field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

var uniqueConstraintFields = map[string]string{
	"accounts_email_key":        "email",
	"accounts_phone_number_key": "phone_number",
	"accounts_username_key":     "username",
}

// translateError turns driver errors the caller can act on into repository errors.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		field, ok := uniqueConstraintFields[pqErr.Constraint]
		if !ok {
			field = "account"
		}
		return &DuplicateError{Field: field}
	}

	return err
}
