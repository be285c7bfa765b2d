//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package artifact provides the definition and service for versioned image artifacts.
package artifact

import "time"

// Artifact represents an immutable content artifact such as an uploaded
// or generated image. Once written to a Service, an artifact is never
// mutated; writing the same filename again creates a new version.
type Artifact struct {
	// Data contains the raw bytes (required).
	Data []byte `json:"data,omitempty"`
	// MimeType is the IANA standard MIME type of the source data (required).
	MimeType string `json:"mime_type,omitempty"`
	// Name is an optional display name of the artifact.
	// Used to provide a label or filename to distinguish artifacts.
	Name string `json:"name,omitempty"`
	// Version is the version assigned by the service at save time.
	// Versions for a given (session, filename) key start at 1 and are
	// strictly increasing.
	Version int `json:"version,omitempty"`
	// CreatedAt is the time the artifact was written.
	CreatedAt time.Time `json:"created_at,omitempty"`
}
