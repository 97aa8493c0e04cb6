package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"locsmith/internal/domain"
)

// mapErr converts driver errors into domain sentinels. Unique-constraint
// violations surface as ErrDuplicateKey; everything else is a persistence
// failure.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
