//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package resolver decides which image bytes back a requested operation.
//
// The precedence is fixed and every branch is reached by an explicit
// check, not by swallowing a failed probe:
//
//  1. An explicit index must resolve through the ledger; a miss is a
//     hard error, never a fallback trigger.
//  2. Otherwise, a non-empty ledger supplies the current image.
//  3. Otherwise, a freshly attached image on the request itself is used
//     directly, without requiring a prior upload.
//  4. Otherwise, ErrNoImageAvailable.
//
// Reordering these branches changes user-visible behavior, e.g. a fresh
// attachment silently shadowing history.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	"trpc.group/trpc-go/trpc-imagestudio-go/ledger"
)

// ErrNoImageAvailable is returned when no branch of the precedence
// policy can supply image bytes. It is a terminal, user-facing
// condition, not a system fault.
var ErrNoImageAvailable = errors.New("resolver: no image available")

// Attachment is an image carried inline on the request itself: a
// freshly arriving, not-yet-persisted candidate. A nil *Attachment
// means the request carried none; operations must pass it explicitly
// rather than probing ambient request state.
type Attachment struct {
	// MimeType is the attachment's MIME type.
	MimeType string
	// Data is the raw image bytes.
	Data []byte
}

// Request carries the two optional inputs of a resolution.
type Request struct {
	// Index is the explicit ledger index requested by the caller, if any.
	Index *int
	// Attachment is the inline image attached to the request, if any.
	Attachment *Attachment
}

// Source is the resolved image backing an operation.
type Source struct {
	// Data is the raw image bytes.
	Data []byte
	// MimeType is the MIME type of the bytes.
	MimeType string
	// Index is the ledger index the bytes came from, or 0 when they
	// came from a request attachment.
	Index int
}

// FromAttachment reports whether the source bytes came from a request
// attachment rather than the ledger.
func (s *Source) FromAttachment() bool {
	return s.Index == 0
}

// Resolver resolves operation requests to image bytes using a session
// image ledger and the artifact store backing it.
type Resolver struct {
	ledger    ledger.Service
	artifacts artifact.Service
}

// New creates a resolver over the given ledger and artifact services.
func New(ledgerService ledger.Service, artifacts artifact.Service) *Resolver {
	return &Resolver{
		ledger:    ledgerService,
		artifacts: artifacts,
	}
}

// Resolve applies the precedence policy and returns the image bytes
// backing the request. A miss on an explicit index surfaces the
// ledger's *ledger.IndexNotFoundError unchanged; an exhausted policy
// returns ErrNoImageAvailable.
func (r *Resolver) Resolve(ctx context.Context, sessionInfo artifact.SessionInfo, req Request) (*Source, error) {
	// 1. Explicit index: resolve it or fail, never fall through.
	if req.Index != nil {
		record, err := r.ledger.ResolveByIndex(ctx, sessionInfo, *req.Index)
		if err != nil {
			return nil, err
		}
		return r.load(ctx, sessionInfo, record)
	}

	// 2. Non-empty ledger: the current (most recently uploaded) image.
	index, ok, err := r.ledger.CurrentIndex(ctx, sessionInfo)
	if err != nil {
		return nil, fmt.Errorf("resolve current index: %w", err)
	}
	if ok {
		record, err := r.ledger.ResolveByIndex(ctx, sessionInfo, index)
		if err != nil {
			return nil, fmt.Errorf("resolve current image #%d: %w", index, err)
		}
		return r.load(ctx, sessionInfo, record)
	}

	// 3. Fresh attachment on the request itself.
	if req.Attachment != nil {
		return &Source{
			Data:     req.Attachment.Data,
			MimeType: req.Attachment.MimeType,
		}, nil
	}

	// 4. Nothing can supply bytes.
	return nil, ErrNoImageAvailable
}

// load reads the bytes behind a ledger record from the artifact store.
// A missing artifact here is an invariant breach (the ledger references
// only artifacts it wrote), so the error propagates as infrastructural.
func (r *Resolver) load(ctx context.Context, sessionInfo artifact.SessionInfo, record *ledger.UploadedImageRecord) (*Source, error) {
	art, err := r.artifacts.LoadArtifact(ctx, sessionInfo, record.Filename, &record.Version)
	if err != nil {
		return nil, fmt.Errorf("load image #%d (%s v%d): %w",
			record.Index, record.Filename, record.Version, err)
	}
	return &Source{
		Data:     art.Data,
		MimeType: art.MimeType,
		Index:    record.Index,
	}, nil
}
