//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package generation defines the external image generation collaborator
// contract consumed by the transformation orchestrator.
package generation

import (
	"context"
)

// Image is an image exchanged with the generation collaborator.
type Image struct {
	// Data is the raw image bytes.
	Data []byte
	// MimeType is the MIME type of the bytes.
	MimeType string
}

// Request is a single generation request: a prompt plus an optional
// source image to transform.
type Request struct {
	// Prompt is the full prompt text.
	Prompt string
	// Image is the source image, if the request transforms one.
	Image *Image
}

// Result is the outcome of a successful generation call.
//
// A nil Image with a non-error return is a distinct, expected outcome:
// the collaborator completed but produced no image part, typically due
// to content-policy filtering. Callers must report it differently from
// an outright failure.
type Result struct {
	// Image is the generated image, or nil when the model returned none.
	Image *Image
	// Text is any accompanying model text, e.g. an explanation of why
	// no image was produced.
	Text string
}

// Generator generates an image from a prompt and optional source image.
// Implementations make exactly one model call per invocation and never
// retry on model-side refusal.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Result, error)
}
