//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//

package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for upload validation.
var (
	// ErrEmptyData is returned when the uploaded image has no bytes.
	ErrEmptyData = errors.New("ledger: image data cannot be empty")
)

// IndexNotFoundError is returned by ResolveByIndex when the requested
// index was never assigned (or was cleared). Valid carries the indices
// currently in the ledger so callers can enumerate the alternatives in
// a user-facing message.
type IndexNotFoundError struct {
	Index int
	Valid []int
}

// Error implements the error interface.
func (e *IndexNotFoundError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("image #%d not found: no images uploaded yet", e.Index)
	}
	return fmt.Sprintf("image #%d not found: valid indices are %s", e.Index, formatIndices(e.Valid))
}

// formatIndices renders an index list as "1, 2, 3".
func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}
