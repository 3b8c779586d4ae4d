package types

import (
	"errors"
	"fmt"
)

// ErrorFamily groups error kinds by the component that raises them.
type ErrorFamily int

const (
	FamilyInternal ErrorFamily = iota
	FamilyCatalog
	FamilyPage
	FamilyRecord
)

func (f ErrorFamily) String() string {
	switch f {
	case FamilyCatalog:
		return "catalog"
	case FamilyPage:
		return "page"
	case FamilyRecord:
		return "record"
	default:
		return "internal"
	}
}

// DBError is a classified storage error. Two DBErrors match under errors.Is
// when their family and code agree, so the package-level kinds below can be
// used as sentinels while each returned error carries its own message.
type DBError struct {
	Family  ErrorFamily
	Code    string
	Message string
	Cause   error
}

func newKind(family ErrorFamily, code, message string) *DBError {
	return &DBError{Family: family, Code: code, Message: message}
}

// Catalog errors
var (
	ErrDuplicateType     = newKind(FamilyCatalog, "DUPLICATE_TYPE", "type already exists")
	ErrTypeNotFound      = newKind(FamilyCatalog, "TYPE_NOT_FOUND", "type not found")
	ErrInvalidDefinition = newKind(FamilyCatalog, "INVALID_DEFINITION", "invalid type definition")
	ErrCatalogCorrupt    = newKind(FamilyCatalog, "CATALOG_CORRUPT", "catalog file is corrupt")
	ErrCatalogIO         = newKind(FamilyCatalog, "CATALOG_IO", "catalog file i/o failed")
)

// Page errors
var (
	ErrPageNotFound      = newKind(FamilyPage, "PAGE_NOT_FOUND", "page not found")
	ErrInvalidPageNumber = newKind(FamilyPage, "INVALID_PAGE_NUMBER", "invalid page number")
	ErrInvalidSlotNumber = newKind(FamilyPage, "INVALID_SLOT_NUMBER", "invalid slot number")
	ErrPageTooLarge      = newKind(FamilyPage, "PAGE_TOO_LARGE", "page data too large")
	ErrRecordTooLarge    = newKind(FamilyPage, "RECORD_TOO_LARGE", "record too large")
	ErrPageIO            = newKind(FamilyPage, "PAGE_IO", "heap file i/o failed")
)

// Record errors
var (
	ErrFieldCountMismatch    = newKind(FamilyRecord, "FIELD_COUNT_MISMATCH", "field count mismatch")
	ErrFieldTypeError        = newKind(FamilyRecord, "FIELD_TYPE_ERROR", "field type error")
	ErrInvalidRecordSize     = newKind(FamilyRecord, "INVALID_RECORD_SIZE", "invalid record size")
	ErrInvalidRecord         = newKind(FamilyRecord, "INVALID_RECORD", "invalid record")
	ErrFieldConstraint       = newKind(FamilyRecord, "FIELD_CONSTRAINT_VIOLATION", "field constraint violation")
	ErrDuplicateKey          = newKind(FamilyRecord, "DUPLICATE_KEY", "duplicate primary key")
	ErrInvalidKeyValue       = newKind(FamilyRecord, "INVALID_KEY_VALUE", "invalid key value")
	ErrInvalidFieldIndex     = newKind(FamilyRecord, "INVALID_FIELD_INDEX", "invalid field index")
	ErrRecordTooLargeForSlot = newKind(FamilyRecord, "RECORD_TOO_LARGE_FOR_SLOT", "record too large for slot")
)

var ErrInternal = newKind(FamilyInternal, "INTERNAL", "internal error")

// Errorf returns a new error of the given kind. A %w verb in format becomes
// the Cause of the returned error.
func Errorf(kind *DBError, format string, args ...any) *DBError {
	wrapped := fmt.Errorf(format, args...)
	return &DBError{
		Family:  kind.Family,
		Code:    kind.Code,
		Message: wrapped.Error(),
		Cause:   errors.Unwrap(wrapped),
	}
}

// Internal classifies err as an internal error unless it already is a DBError.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return err
	}
	return &DBError{
		Family:  FamilyInternal,
		Code:    ErrInternal.Code,
		Message: "internal error: " + err.Error(),
		Cause:   err,
	}
}

// FamilyOf reports the family of err, or FamilyInternal for unclassified errors.
func FamilyOf(err error) ErrorFamily {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Family
	}
	return FamilyInternal
}

func (e *DBError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DBError) Unwrap() error {
	return e.Cause
}

func (e *DBError) Is(target error) bool {
	t, ok := target.(*DBError)
	if !ok {
		return false
	}
	return t.Family == e.Family && t.Code == e.Code
}
