package types

import "errors"

// ErrMissingFrame indicates an expected frame file is absent or unreadable.
// It is shared by every stage that reads frames back from disk.
var ErrMissingFrame = errors.New("missing frame")
