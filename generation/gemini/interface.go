//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package gemini provides a Gemini-backed image generator.
package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client is the GenAI client. It provides access to the various GenAI services.
type Client interface {
	Models() Models
}

// Models provides methods for interacting with the available models.
// You don't need to implement this yourself. Create a generator via New,
// which wraps the genai client, or inject a fake in tests.
type Models interface {
	// GenerateContent generates content based on the provided model, contents, and configuration.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// clientWrapper implements Client
type clientWrapper struct {
	client *genai.Client
}

// Models implements Client.Models
func (c *clientWrapper) Models() Models {
	return &modelsWrapper{models: c.client.Models}
}

// modelsWrapper implements Models
type modelsWrapper struct {
	models *genai.Models
}

// GenerateContent implements Models.GenerateContent
func (m *modelsWrapper) GenerateContent(ctx context.Context, model string, contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.models.GenerateContent(ctx, model, contents, config)
}
