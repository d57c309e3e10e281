package datastore

import (
	"fmt"

	"github.com/aleister1102/pdfdiff/internal/common"
)

// ErrRecordNotFound is returned when a stored comparison does not exist.
// It matches common.ErrNotFound with errors.Is.
var ErrRecordNotFound = fmt.Errorf("record %w", common.ErrNotFound)
