// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate proposal")
	ErrPermissionDenied = errors.New("permission denied")
)
