package validation

import (
	"strconv"
	"strings"

	"github.com/kbukum/livechat/errors"
)

// FieldError is one failed check, listed under the "fields" detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors for values that are not structs, such as
// the ids an action puts in its query string.
//
//	err := validation.New().Required("license_id", id).Numeric("license_id", id).Validate()
type Validator struct {
	errors []FieldError
}

func New() *Validator { return &Validator{} }

func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

func (v *Validator) Errors() []FieldError { return v.errors }

// Validate returns nil or one validation error naming every failed field.
// The return type is error so a clean Validator compares equal to nil.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	return fieldsError(v.errors)
}

// Required rejects blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

// Numeric rejects a non-empty value that is not a base-10 integer. Pair it
// with Required when the value is mandatory.
func (v *Validator) Numeric(field, value string) *Validator {
	if value == "" {
		return v
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return v.Custom(err == nil, field, "must be numeric")
}

// Custom records message for field unless ok.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// ParseInt parses a required integer field.
func ParseInt(field, value string) (int64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, errors.MissingField(field)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.InvalidFormat(field, "integer")
	}
	return n, nil
}

func fieldsError(fields []FieldError) error {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", fields)
}
