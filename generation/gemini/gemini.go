//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-imagestudio-go/generation"
	"trpc.group/trpc-go/trpc-imagestudio-go/log"
)

var _ generation.Generator = (*Generator)(nil)

// Generator implements the generation.Generator interface for the Gemini API.
type Generator struct {
	client Client
	model  string
	config *genai.GenerateContentConfig
}

// New creates a new Gemini-backed image generator.
func New(ctx context.Context, opts ...Option) (*Generator, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	client, err := genai.NewClient(ctx, o.geminiClientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Generator{
		client: &clientWrapper{client: client},
		model:  o.model,
		config: generateConfig(&o),
	}, nil
}

// generateConfig returns the per-call config, defaulting to text and
// image response modalities so the model may return both an image and
// an explanation.
func generateConfig(o *options) *genai.GenerateContentConfig {
	if o.generateContentConfig != nil {
		return o.generateContentConfig
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
}

// Generate implements generation.Generator. It makes exactly one model
// call; a successful response without an image part yields a Result
// with a nil Image, which callers report as a distinct outcome.
func (g *Generator) Generate(ctx context.Context, req *generation.Request) (*generation.Result, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MimeType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	rsp, err := g.client.Models().GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	result := buildResult(rsp)
	if result.Image == nil {
		log.Infof("gemini: model %s returned no image part", g.model)
	}
	return result, nil
}

// buildResult extracts the first inline image and any text from the response.
func buildResult(rsp *genai.GenerateContentResponse) *generation.Result {
	result := &generation.Result{}
	var textBuilder strings.Builder
	for _, candidate := range rsp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && result.Image == nil {
				result.Image = &generation.Image{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				}
			}
			if part.Text != "" {
				textBuilder.WriteString(part.Text)
			}
		}
	}
	result.Text = textBuilder.String()
	return result
}
