package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by every service. Handlers translate these to HTTP
// status codes; repositories never return them directly.
var (
	ErrInvalidID    = errors.New("invalid id")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")
	ErrReaderNil    = errors.New("reader is nil")
)

// parseID validates an identifier before it reaches the record store.
func parseID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// mapNoRows translates the record store's missing-row error into the service
// taxonomy and passes everything else through.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
