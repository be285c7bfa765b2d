//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory session image ledger.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	iartifact "trpc.group/trpc-go/trpc-imagestudio-go/internal/artifact"
	"trpc.group/trpc-go/trpc-imagestudio-go/ledger"
	"trpc.group/trpc-go/trpc-imagestudio-go/log"
)

var _ ledger.Service = (*Service)(nil)

// sessionLedger holds one session's upload records.
// Its mutex serializes mutating operations on the session, keeping the
// artifact write and the ledger append atomic with respect to
// concurrent callers on the same session.
type sessionLedger struct {
	mu sync.Mutex
	// images is append-only; insertion order equals index order.
	images []ledger.UploadedImageRecord
	// currentIndex is the index of the current image, 0 when unset.
	currentIndex int
}

// Service is an in-memory implementation of the session image ledger,
// persisting image bytes through an artifact service.
type Service struct {
	artifacts artifact.Service

	// mu protects the sessions map only; per-session state is guarded
	// by each sessionLedger's own mutex so unrelated sessions never
	// contend.
	mu       sync.RWMutex
	sessions map[string]*sessionLedger
}

// NewService creates a new in-memory ledger service backed by the given
// artifact service.
func NewService(artifacts artifact.Service) *Service {
	return &Service{
		artifacts: artifacts,
		sessions:  make(map[string]*sessionLedger),
	}
}

// session returns the ledger for the given session, creating it lazily.
func (s *Service) session(sessionInfo artifact.SessionInfo) *sessionLedger {
	key := iartifact.BuildSessionPrefix(sessionInfo)

	s.mu.RLock()
	sl := s.sessions[key]
	s.mu.RUnlock()
	if sl != nil {
		return sl
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sl = s.sessions[key]; sl == nil {
		sl = &sessionLedger{}
		s.sessions[key] = sl
	}
	return sl
}

// RecordUpload stores the image via the artifact service and appends a
// new record with the next free index, making it current.
func (s *Service) RecordUpload(ctx context.Context, sessionInfo artifact.SessionInfo, mimeType string, data []byte) (*ledger.UploadedImageRecord, error) {
	if len(data) == 0 {
		return nil, ledger.ErrEmptyData
	}

	sl := s.session(sessionInfo)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	index := 1
	if n := len(sl.images); n > 0 {
		index = sl.images[n-1].Index + 1
	}
	filename := ledger.UploadFilename(index, mimeType)

	version, err := s.artifacts.SaveArtifact(ctx, sessionInfo, filename, &artifact.Artifact{
		Data:     data,
		MimeType: mimeType,
		Name:     filename,
	})
	if err != nil {
		return nil, fmt.Errorf("record upload: %w", err)
	}

	record := ledger.UploadedImageRecord{
		Index:      index,
		Filename:   filename,
		MimeType:   mimeType,
		Version:    version,
		UploadedAt: time.Now(),
	}
	sl.images = append(sl.images, record)
	sl.currentIndex = index

	log.Debugf("ledger: recorded upload #%d (%s v%d) for session %s",
		index, filename, version, sessionInfo.SessionID)
	return &record, nil
}

// List returns the session's upload records in upload order.
func (s *Service) List(ctx context.Context, sessionInfo artifact.SessionInfo) ([]ledger.UploadedImageRecord, error) {
	sl := s.session(sessionInfo)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	out := make([]ledger.UploadedImageRecord, len(sl.images))
	copy(out, sl.images)
	return out, nil
}

// ResolveByIndex returns the record with exactly the given index, or an
// *ledger.IndexNotFoundError enumerating the valid indices.
func (s *Service) ResolveByIndex(ctx context.Context, sessionInfo artifact.SessionInfo, index int) (*ledger.UploadedImageRecord, error) {
	sl := s.session(sessionInfo)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	for i := range sl.images {
		if sl.images[i].Index == index {
			record := sl.images[i]
			return &record, nil
		}
	}

	valid := make([]int, len(sl.images))
	for i := range sl.images {
		valid[i] = sl.images[i].Index
	}
	return nil, &ledger.IndexNotFoundError{Index: index, Valid: valid}
}

// CurrentIndex reports the session's current image index.
func (s *Service) CurrentIndex(ctx context.Context, sessionInfo artifact.SessionInfo) (int, bool, error) {
	sl := s.session(sessionInfo)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.currentIndex == 0 {
		return 0, false, nil
	}
	return sl.currentIndex, true, nil
}

// Clear empties the session's image list and unsets the current index.
// Artifacts already written stay in the store; a later re-upload
// restarts index numbering at 1 and the store assigns the re-used
// filename its next version.
func (s *Service) Clear(ctx context.Context, sessionInfo artifact.SessionInfo) error {
	sl := s.session(sessionInfo)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if len(sl.images) > 0 {
		log.Debugf("ledger: cleared %d images for session %s",
			len(sl.images), sessionInfo.SessionID)
	}
	sl.images = nil
	sl.currentIndex = 0
	return nil
}
