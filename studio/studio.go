//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package studio exposes the user-facing image operations of a
// conversational session: upload an image, list uploads, transform an
// image into a requested style, and clear the session's uploads.
//
// Every operation returns a response struct whose Message field is a
// short human-readable status the surrounding conversation can render
// verbatim. Recoverable conditions come back as messages, not errors;
// no operation failure crashes the session.
package studio

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	"trpc.group/trpc-go/trpc-imagestudio-go/generation"
	"trpc.group/trpc-go/trpc-imagestudio-go/ledger"
	"trpc.group/trpc-go/trpc-imagestudio-go/log"
	"trpc.group/trpc-go/trpc-imagestudio-go/resolver"
	"trpc.group/trpc-go/trpc-imagestudio-go/transform"
)

// Studio binds the ledger, the artifact store and the generation
// collaborator into the per-session operation surface.
type Studio struct {
	ledger       ledger.Service
	artifacts    artifact.Service
	orchestrator *transform.Orchestrator
}

// New creates a studio over the given services. Transform options are
// forwarded to the orchestrator.
func New(ledgerService ledger.Service, artifacts artifact.Service, generator generation.Generator, opts ...transform.Option) (*Studio, error) {
	orchestrator, err := transform.New(resolver.New(ledgerService, artifacts), artifacts, generator, opts...)
	if err != nil {
		return nil, fmt.Errorf("create orchestrator: %w", err)
	}
	return &Studio{
		ledger:       ledgerService,
		artifacts:    artifacts,
		orchestrator: orchestrator,
	}, nil
}

// Close releases orchestrator resources.
func (s *Studio) Close() {
	s.orchestrator.Close()
}

// UploadImageRequest represents the input for the upload image operation.
type UploadImageRequest struct {
	// MimeType is the MIME type of the uploaded bytes.
	MimeType string `json:"mime_type"`
	// Data is the raw image bytes.
	Data []byte `json:"data"`
}

// UploadImageResponse represents the output from the upload image operation.
type UploadImageResponse struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Version  int    `json:"version"`
	Message  string `json:"message"`
}

// UploadImage stores an uploaded image in the session ledger and makes
// it the session's current image.
func (s *Studio) UploadImage(ctx context.Context, sessionInfo artifact.SessionInfo, req *UploadImageRequest) (*UploadImageResponse, error) {
	rsp := &UploadImageResponse{}
	record, err := s.ledger.RecordUpload(ctx, sessionInfo, req.MimeType, req.Data)
	if err != nil {
		rsp.Message = fmt.Sprintf("Error: %v", err)
		return rsp, err
	}
	rsp.Index = record.Index
	rsp.Filename = record.Filename
	rsp.Version = record.Version
	rsp.Message = fmt.Sprintf("Saved image #%d as %s. It is now the current image.", record.Index, record.Filename)
	return rsp, nil
}

// ListImagesResponse represents the output from the list images operation.
type ListImagesResponse struct {
	Images       []ledger.UploadedImageRecord `json:"images"`
	CurrentIndex int                          `json:"current_index,omitempty"`
	Message      string                       `json:"message"`
}

// ListImages lists the session's uploaded images in upload order.
// An empty session is a valid, non-error outcome.
func (s *Studio) ListImages(ctx context.Context, sessionInfo artifact.SessionInfo) (*ListImagesResponse, error) {
	records, err := s.ledger.List(ctx, sessionInfo)
	if err != nil {
		return &ListImagesResponse{Message: fmt.Sprintf("Error: %v", err)}, err
	}
	rsp := &ListImagesResponse{Images: records}
	if len(records) == 0 {
		rsp.Message = "No images uploaded yet."
		return rsp, nil
	}
	if index, ok, err := s.ledger.CurrentIndex(ctx, sessionInfo); err == nil && ok {
		rsp.CurrentIndex = index
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d uploaded image(s):", len(records))
	for _, record := range records {
		marker := ""
		if record.Index == rsp.CurrentIndex {
			marker = " (current)"
		}
		fmt.Fprintf(&b, "\n  #%d %s (%s)%s", record.Index, record.Filename, record.MimeType, marker)
	}
	rsp.Message = b.String()
	return rsp, nil
}

// TransformRequest represents the input for the transform operation.
type TransformRequest struct {
	// CharacterOrStyle names the character or style to transform into.
	CharacterOrStyle string `json:"character_or_style"`
	// Description optionally refines the requested style.
	Description string `json:"description"`
	// ImageIndex optionally selects the source image by ledger index.
	ImageIndex *int `json:"image_index,omitempty"`
	// Attachment is an image attached inline to this request, if any.
	Attachment *resolver.Attachment `json:"-"`
}

// TransformResponse represents the output from the transform operation.
type TransformResponse struct {
	Outcome     transform.Outcome `json:"outcome"`
	Filename    string            `json:"filename,omitempty"`
	Version     int               `json:"version,omitempty"`
	SourceIndex int               `json:"source_index,omitempty"`
	Message     string            `json:"message"`
}

// Transform generates a styled variant of the resolved source image and
// persists it as a new artifact. The source image and its ledger record
// are never touched.
func (s *Studio) Transform(ctx context.Context, sessionInfo artifact.SessionInfo, req *TransformRequest) (*TransformResponse, error) {
	style := req.CharacterOrStyle
	if req.Description != "" {
		style = fmt.Sprintf("%s, %s", style, req.Description)
	}

	result, err := s.orchestrator.Transform(ctx, sessionInfo, &transform.Request{
		Style:      style,
		Index:      req.ImageIndex,
		Attachment: req.Attachment,
	})
	if err != nil {
		log.Errorf("studio: transform failed for session %s: %v", sessionInfo.SessionID, err)
		return &TransformResponse{
			Outcome: transform.OutcomeFailed,
			Message: "Error: could not complete the transformation",
		}, err
	}

	rsp := &TransformResponse{
		Outcome:     result.Outcome,
		Filename:    result.Filename,
		Version:     result.Version,
		SourceIndex: result.SourceIndex,
		Message:     transformMessage(result),
	}
	return rsp, nil
}

// transformMessage renders a transformation result as user-facing text.
func transformMessage(result *transform.Result) string {
	switch result.Outcome {
	case transform.OutcomeCreated:
		source := "the attached image"
		if result.SourceIndex > 0 {
			source = fmt.Sprintf("image #%d", result.SourceIndex)
		}
		return fmt.Sprintf("Created %s from %s.", result.Filename, source)
	case transform.OutcomeNotFound:
		// The reason already enumerates the valid indices.
		return upperFirst(result.Reason) + "."
	case transform.OutcomeNoImage:
		return "No image available. Upload an image first or attach one to your request."
	case transform.OutcomeEmpty:
		msg := "The model returned no image; it may have declined the request. It will not be retried automatically."
		if result.Text != "" {
			msg += " Model note: " + result.Text
		}
		return msg
	case transform.OutcomeInterrupted:
		return "Image generation was interrupted before completion. Nothing was saved."
	default:
		return "Image generation failed. Please try again later."
	}
}

// ClearImagesResponse represents the output from the clear images operation.
type ClearImagesResponse struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

// ClearImages empties the session's image list. Clearing an empty
// session succeeds silently. Stored artifacts remain in the store,
// unreferenced.
func (s *Studio) ClearImages(ctx context.Context, sessionInfo artifact.SessionInfo) (*ClearImagesResponse, error) {
	records, err := s.ledger.List(ctx, sessionInfo)
	if err != nil {
		return &ClearImagesResponse{Message: fmt.Sprintf("Error: %v", err)}, err
	}
	if err := s.ledger.Clear(ctx, sessionInfo); err != nil {
		return &ClearImagesResponse{Message: fmt.Sprintf("Error: %v", err)}, err
	}
	rsp := &ClearImagesResponse{Removed: len(records)}
	if len(records) == 0 {
		rsp.Message = "No images to clear."
	} else {
		rsp.Message = fmt.Sprintf("Cleared %d uploaded image(s).", len(records))
	}
	return rsp, nil
}

// upperFirst capitalizes the first byte of an ASCII message.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
