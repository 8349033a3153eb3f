package auth

import "errors"

var ErrInvalidCredentials = errors.New("invalid_credentials")
