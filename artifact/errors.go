//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//

package artifact

import "errors"

// Sentinel errors for artifact operations.
var (
	// ErrNotFound is returned by LoadArtifact when the key has no
	// versions or the requested version does not exist. It is a normal,
	// expected outcome callers must handle, not a system fault.
	ErrNotFound = errors.New("artifact: not found")

	// ErrEmptyFilename is returned when the filename is empty.
	ErrEmptyFilename = errors.New("artifact: filename cannot be empty")

	// ErrNilArtifact is returned when the artifact is nil.
	ErrNilArtifact = errors.New("artifact: artifact cannot be nil")
)
