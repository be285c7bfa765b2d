//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package transform drives one image transformation request end-to-end:
// resolve the source image, call the generation collaborator exactly
// once, and persist the result as a new artifact.
//
// Transformations are purely additive. The source artifact and its
// ledger record are never mutated or deleted, and exactly one new
// artifact is created on success, zero on any failure path.
package transform

import (
	"context"
	"errors"
	"fmt"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	"trpc.group/trpc-go/trpc-imagestudio-go/generation"
	"trpc.group/trpc-go/trpc-imagestudio-go/ledger"
	"trpc.group/trpc-go/trpc-imagestudio-go/log"
	"trpc.group/trpc-go/trpc-imagestudio-go/resolver"
	"trpc.group/trpc-go/trpc-imagestudio-go/telemetry/trace"
)

// Outcome classifies how a transformation ended. All outcomes are
// recoverable at the operation boundary; callers render them as text.
type Outcome string

// Transformation outcomes.
const (
	// OutcomeCreated means a new artifact was persisted.
	OutcomeCreated Outcome = "created"
	// OutcomeNotFound means the explicitly requested source index does not exist.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeNoImage means no source image could be resolved at all.
	OutcomeNoImage Outcome = "no_image"
	// OutcomeEmpty means the collaborator succeeded but returned no
	// image, e.g. due to content-policy filtering. No retry is automatic.
	OutcomeEmpty Outcome = "empty"
	// OutcomeInterrupted means the generation call was cancelled or
	// timed out; ledger and store are left unchanged.
	OutcomeInterrupted Outcome = "interrupted"
	// OutcomeFailed means the collaborator call itself errored.
	OutcomeFailed Outcome = "failed"
)

// keyOutcome is the span attribute recording the transformation outcome.
const keyOutcome = "imagestudio.transform.outcome"

// promptTemplate is the fixed structural template combined with the
// requested style. It pins the constraints every transformation shares:
// the subject stays recognizable, the style is applied throughout, and
// the output is one complete image.
const promptTemplate = `Transform the provided image into the following style: %s.
Keep the subject clearly recognizable and preserve the overall composition.
Apply the stylistic and atmospheric qualities of the requested style throughout the image.
Produce a single, complete image with no missing regions.`

// Request is one transformation request.
type Request struct {
	// Style is the free-text style description.
	Style string
	// Index optionally selects an explicit source image from the ledger.
	Index *int
	// Attachment is an image attached inline to this request, if any.
	Attachment *resolver.Attachment
}

// Result reports how a transformation ended.
type Result struct {
	// Outcome classifies the ending.
	Outcome Outcome
	// Filename and Version reference the created artifact when
	// Outcome is OutcomeCreated.
	Filename string
	Version  int
	// SourceIndex is the ledger index the source bytes came from, or 0
	// when they came from a request attachment.
	SourceIndex int
	// Text is any model text accompanying the result.
	Text string
	// Reason is a short human-readable description of a non-created
	// outcome. It never carries internal stack detail.
	Reason string
}

// Orchestrator composes the resolver, the artifact store and the
// generation collaborator into single end-to-end transformations.
type Orchestrator struct {
	resolver  *resolver.Resolver
	artifacts artifact.Service
	generator generation.Generator
	pool      *ants.Pool
}

// New creates a transformation orchestrator.
func New(res *resolver.Resolver, artifacts artifact.Service, generator generation.Generator, opts ...Option) (*Orchestrator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	orch := &Orchestrator{
		resolver:  res,
		artifacts: artifacts,
		generator: generator,
	}
	if o.maxConcurrentGenerations > 0 {
		pool, err := ants.NewPool(o.maxConcurrentGenerations)
		if err != nil {
			return nil, fmt.Errorf("create generation pool: %w", err)
		}
		orch.pool = pool
	}
	return orch, nil
}

// Close releases the generation pool, if any.
func (o *Orchestrator) Close() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// Transform runs one transformation. Recoverable conditions come back
// as Result outcomes with a nil error; only infrastructural failures
// (e.g. the store rejecting the write) return an error.
func (o *Orchestrator) Transform(ctx context.Context, sessionInfo artifact.SessionInfo, req *Request) (*Result, error) {
	ctx, span := trace.Tracer.Start(ctx, "transform_image")
	defer span.End()

	src, err := o.resolver.Resolve(ctx, sessionInfo, resolver.Request{
		Index:      req.Index,
		Attachment: req.Attachment,
	})
	if err != nil {
		var notFound *ledger.IndexNotFoundError
		switch {
		case errors.As(err, &notFound):
			span.SetAttributes(attribute.String(keyOutcome, string(OutcomeNotFound)))
			return &Result{Outcome: OutcomeNotFound, Reason: notFound.Error()}, nil
		case errors.Is(err, resolver.ErrNoImageAvailable):
			span.SetAttributes(attribute.String(keyOutcome, string(OutcomeNoImage)))
			return &Result{Outcome: OutcomeNoImage, Reason: "no image available"}, nil
		default:
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	genResult, err := o.generate(ctx, &generation.Request{
		Prompt: fmt.Sprintf(promptTemplate, req.Style),
		Image:  &generation.Image{Data: src.Data, MimeType: src.MimeType},
	})
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			span.SetAttributes(attribute.String(keyOutcome, string(OutcomeInterrupted)))
			return &Result{
				Outcome:     OutcomeInterrupted,
				SourceIndex: src.Index,
				Reason:      "generation interrupted before completion",
			}, nil
		}
		log.Errorf("transform: generation failed for session %s: %v", sessionInfo.SessionID, err)
		span.SetAttributes(attribute.String(keyOutcome, string(OutcomeFailed)))
		return &Result{
			Outcome:     OutcomeFailed,
			SourceIndex: src.Index,
			Reason:      "image generation failed",
		}, nil
	}
	if genResult.Image == nil {
		span.SetAttributes(attribute.String(keyOutcome, string(OutcomeEmpty)))
		return &Result{
			Outcome:     OutcomeEmpty,
			SourceIndex: src.Index,
			Text:        genResult.Text,
			Reason:      "the model produced no image",
		}, nil
	}
	if ctx.Err() != nil {
		// Cancelled after the model returned: persist nothing.
		span.SetAttributes(attribute.String(keyOutcome, string(OutcomeInterrupted)))
		return &Result{
			Outcome:     OutcomeInterrupted,
			SourceIndex: src.Index,
			Reason:      "generation interrupted before completion",
		}, nil
	}

	filename := resultFilename(req.Style, genResult.Image.MimeType)
	version, err := o.artifacts.SaveArtifact(ctx, sessionInfo, filename, &artifact.Artifact{
		Data:     genResult.Image.Data,
		MimeType: genResult.Image.MimeType,
		Name:     sourceTag(filename, src),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("persist generated image: %w", err)
	}

	log.Infof("transform: created %s v%d for session %s", filename, version, sessionInfo.SessionID)
	span.SetAttributes(attribute.String(keyOutcome, string(OutcomeCreated)))
	return &Result{
		Outcome:     OutcomeCreated,
		Filename:    filename,
		Version:     version,
		SourceIndex: src.Index,
		Text:        genResult.Text,
	}, nil
}

// generate makes the single outbound model call, through the bounded
// pool when one is configured.
func (o *Orchestrator) generate(ctx context.Context, req *generation.Request) (*generation.Result, error) {
	if o.pool == nil {
		return o.generator.Generate(ctx, req)
	}

	type genOut struct {
		result *generation.Result
		err    error
	}
	done := make(chan genOut, 1)
	if err := o.pool.Submit(func() {
		result, err := o.generator.Generate(ctx, req)
		done <- genOut{result: result, err: err}
	}); err != nil {
		return nil, fmt.Errorf("submit generation task: %w", err)
	}

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// sourceTag labels a generated artifact with the source it derives
// from, so the provenance of every generated blob stays inspectable.
func sourceTag(filename string, src *resolver.Source) string {
	if src.FromAttachment() {
		return fmt.Sprintf("%s (source: attachment)", filename)
	}
	return fmt.Sprintf("%s (source: image #%d)", filename, src.Index)
}
