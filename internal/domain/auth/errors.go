package auth

import "errors"

// ErrEmailExists reports a duplicate registration attempt.
var ErrEmailExists = errors.New("email already registered")
