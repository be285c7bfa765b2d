//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package artifact

import (
	"context"
)

// SessionInfo contains the session information for artifact operations.
type SessionInfo struct {
	// AppName is the name of the application
	AppName string
	// UserID is the ID of the user
	UserID string
	// SessionID is the ID of the session
	SessionID string
}

// Service defines the interface for artifact storage and retrieval operations.
//
// The store is append-only: saving under an existing (session, filename)
// key creates a new version rather than overwriting, and no operation
// removes stored versions. Logical deletion is a concern of the ledger,
// not of the store.
type Service interface {
	// SaveArtifact saves an artifact to the artifact service storage.
	//
	// The artifact is a file identified by the session info and filename.
	// After saving the artifact, the assigned version is returned.
	// The first version of an artifact is 1; each subsequent save of the
	// same key increments it by 1. Concurrent saves of the same key must
	// serialize so versions are never duplicated or skipped.
	SaveArtifact(ctx context.Context, sessionInfo SessionInfo, filename string, artifact *Artifact) (int, error)

	// LoadArtifact gets an artifact from the artifact service storage.
	//
	// If version is nil, the latest version is returned. If the key has
	// no versions, or the requested version does not exist, the error is
	// ErrNotFound; callers are expected to handle it as a normal outcome.
	LoadArtifact(ctx context.Context, sessionInfo SessionInfo, filename string, version *int) (*Artifact, error)

	// ListArtifactKeys lists all the artifact filenames within a session.
	ListArtifactKeys(ctx context.Context, sessionInfo SessionInfo) ([]string, error)

	// ListVersions lists all versions of an artifact in increasing order.
	// A key with no versions yields an empty list, not an error.
	ListVersions(ctx context.Context, sessionInfo SessionInfo, filename string) ([]int, error)
}
