package audit

import "errors"

// ErrInvalidInput indicates an empty audit entry.
var ErrInvalidInput = errors.New("invalid audit input")
