// Package repository declares the storage interfaces used by the services.
// Implementations live in the sqlite, redisstore and memory subpackages.
package repository

import "errors"

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")
