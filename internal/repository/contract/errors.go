package contract

import "errors"

// ErrDuplicate is returned when an insert hits a unique index (email, phone).
var ErrDuplicate = errors.New("duplicate record")
