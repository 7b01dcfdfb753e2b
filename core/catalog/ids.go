package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var NowFunc = time.Now // mockable

// NewID returns a time ordered identifier: prefix followed by a UUIDv7.
func NewID(prefix string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errors.Wrap(err, "generating id")
	}
	return prefix + id.String(), nil
}

// Today returns the current date in DateLayout.
func Today() string {
	return NowFunc().Format(DateLayout)
}
