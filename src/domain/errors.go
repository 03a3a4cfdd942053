package domain

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound       = errors.New("Employee not found")
	ErrDuplicateEmail = errors.New("Email is already registered")
)

type MissingFieldsError struct {
	Fields []string
}

func (self *MissingFieldsError) Error() string {
	return "All fields are required, missing: " + strings.Join(self.Fields, ", ")
}

// Has reports whether the given field was missing.
// Templates use it to mark form inputs.
func (self *MissingFieldsError) Has(field string) bool {
	if self == nil {
		return false
	}
	for _, f := range self.Fields {
		if f == field {
			return true
		}
	}
	return false
}
