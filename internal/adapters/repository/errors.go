package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrDecode  = errors.New("decode stored blob")
	ErrEncode  = errors.New("encode blob")
	ErrBackend = errors.New("storage backend")
	ErrKey     = errors.New("invalid storage key")
)
