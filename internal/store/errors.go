package store

import (
	"fmt"
	"strconv"
)

// Validation reason codes. These are stable identifiers surfaced to the API
// layer so any presentation layer can render its own message.
const (
	CodeBarcodeLength    = "BARCODE_LENGTH"
	CodeBarcodeDuplicate = "BARCODE_DUPLICATE"
	CodeSerialDuplicate  = "SERIAL_DUPLICATE"
	CodeInvalidLocation  = "INVALID_LOCATION"
	CodeRequired         = "REQUIRED"
	CodeHasHistory       = "HAS_HISTORY"
	CodeLocationInUse    = "LOCATION_IN_USE"
)

// ValidationError is a caller-correctable input problem. It is never
// retried: the caller must fix the input.
type ValidationError struct {
	Field string
	Code  string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation failed: %s %s (%q)", e.Field, e.Code, e.Value)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Code)
}

// NotFoundError means a referenced barcode or id does not exist.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// ConflictError means a concurrent writer modified the item between read
// and commit. The caller should re-read current state and retry.
type ConflictError struct {
	Barcode string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of item %s", e.Barcode)
}

// StorageError wraps an underlying persistence failure, possibly transient.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storeErr wraps a driver error as a StorageError.
func storeErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
