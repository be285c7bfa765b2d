//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package ledger provides the per-session registry of uploaded images.
//
// The ledger owns the authoritative ordered list of a session's uploads
// and which one is "current". It records blobs through an
// artifact.Service but never deletes them: Clear empties the visible
// list while stored artifacts stay in place, unreferenced.
package ledger

import (
	"context"
	"time"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
)

// UploadedImageRecord describes one uploaded image in a session.
// Records are append-only and never mutated after creation.
type UploadedImageRecord struct {
	// Index is the per-session upload number, starting at 1.
	Index int `json:"index"`
	// Filename is the storage filename derived from the MIME type.
	Filename string `json:"filename"`
	// MimeType is the MIME type the image was uploaded with.
	MimeType string `json:"mime_type"`
	// Version is the artifact store version the upload was written as.
	Version int `json:"version"`
	// UploadedAt is the time the upload was recorded.
	UploadedAt time.Time `json:"uploaded_at"`
}

// Service defines the session image ledger operations.
//
// Mutating operations on the same session serialize internally, so
// within a session upload indices are strictly increasing with no gaps
// or reuse. Different sessions share no mutable state.
type Service interface {
	// RecordUpload stores the image bytes as a new artifact, appends a
	// record with the next free index (starting at 1) and makes it the
	// session's current image.
	RecordUpload(ctx context.Context, sessionInfo artifact.SessionInfo, mimeType string, data []byte) (*UploadedImageRecord, error)

	// List returns the session's uploaded images in upload order.
	// An empty result is a valid outcome meaning nothing was uploaded yet.
	List(ctx context.Context, sessionInfo artifact.SessionInfo) ([]UploadedImageRecord, error)

	// ResolveByIndex returns the record with exactly the given index.
	// A miss yields an *IndexNotFoundError carrying the valid indices.
	ResolveByIndex(ctx context.Context, sessionInfo artifact.SessionInfo, index int) (*UploadedImageRecord, error)

	// CurrentIndex reports the session's current image index.
	// ok is false when the session has no uploads.
	CurrentIndex(ctx context.Context, sessionInfo artifact.SessionInfo) (index int, ok bool, err error)

	// Clear empties the session's image list and unsets the current
	// index. Clearing an already-empty session succeeds silently.
	// Stored artifacts are left untouched; a later re-upload restarts
	// index numbering at 1.
	Clear(ctx context.Context, sessionInfo artifact.SessionInfo) error
}
