//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory implementation of the artifact service.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	iartifact "trpc.group/trpc-go/trpc-imagestudio-go/internal/artifact"
)

var _ artifact.Service = (*Service)(nil)

// Service is an in-memory implementation of the artifact service.
// It is suitable for testing and single-process deployments.
type Service struct {
	// artifacts stores artifacts by object path, with each path holding
	// its versions in order. Version n lives at slice position n-1.
	artifacts map[string][]*artifact.Artifact
	// mutex protects concurrent access to the artifacts map. Holding it
	// for the whole save also serializes concurrent saves of the same
	// key, so version numbers are never duplicated or skipped.
	mutex sync.RWMutex
}

// NewService creates a new in-memory artifact service.
func NewService() *Service {
	return &Service{
		artifacts: make(map[string][]*artifact.Artifact),
	}
}

// SaveArtifact saves an artifact to the in-memory storage and returns
// the assigned version, starting at 1 for a new key.
func (s *Service) SaveArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string, art *artifact.Artifact) (int, error) {
	if art == nil {
		return 0, artifact.ErrNilArtifact
	}
	if filename == "" {
		return 0, artifact.ErrEmptyFilename
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	path := iartifact.BuildObjectNamePrefix(sessionInfo, filename)
	version := len(s.artifacts[path]) + 1

	// Store a stamped copy so the caller's value is never mutated and
	// stored versions stay immutable.
	stored := &artifact.Artifact{
		Data:      art.Data,
		MimeType:  art.MimeType,
		Name:      art.Name,
		Version:   version,
		CreatedAt: time.Now(),
	}
	if stored.Name == "" {
		stored.Name = filename
	}
	s.artifacts[path] = append(s.artifacts[path], stored)

	return version, nil
}

// LoadArtifact gets an artifact from the in-memory storage. A nil
// version loads the latest one. Missing keys and missing versions
// yield artifact.ErrNotFound.
func (s *Service) LoadArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string, version *int) (*artifact.Artifact, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	path := iartifact.BuildObjectNamePrefix(sessionInfo, filename)
	versions := s.artifacts[path]
	if len(versions) == 0 {
		return nil, artifact.ErrNotFound
	}

	target := len(versions)
	if version != nil {
		target = *version
		if target < 1 || target > len(versions) {
			return nil, artifact.ErrNotFound
		}
	}

	return versions[target-1], nil
}

// ListArtifactKeys lists all the artifact filenames within a session.
func (s *Service) ListArtifactKeys(ctx context.Context, sessionInfo artifact.SessionInfo) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sessionPrefix := iartifact.BuildSessionPrefix(sessionInfo)

	var filenames []string
	for path := range s.artifacts {
		if strings.HasPrefix(path, sessionPrefix) {
			filenames = append(filenames, strings.TrimPrefix(path, sessionPrefix))
		}
	}

	sort.Strings(filenames)
	return filenames, nil
}

// ListVersions lists all versions of an artifact in increasing order.
func (s *Service) ListVersions(ctx context.Context, sessionInfo artifact.SessionInfo, filename string) ([]int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	path := iartifact.BuildObjectNamePrefix(sessionInfo, filename)
	versions := s.artifacts[path]

	result := make([]int, len(versions))
	for i := range versions {
		result[i] = i + 1
	}
	return result, nil
}
