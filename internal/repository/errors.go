// Package repository implements data access for the catalog on top of
// database/sql.  Repositories never log and never interpret business rules;
// they return the sentinels below so that services can translate them.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id yields no rows.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// e.g. registering a username that already exists.
var ErrDuplicate = errors.New("duplicate")
