package store

import (
	"database/sql"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
		return ErrNotFound
	}
	return err
}
