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
	"google.golang.org/genai"
)

// defaultModel is the image-capable Gemini model used when none is set.
const defaultModel = "gemini-2.5-flash-image"

// options contains configuration options for creating a Gemini generator.
type options struct {
	// model is the Gemini model name.
	model string
	// geminiClientConfig for building the gemini client. Nil lets the
	// client read GOOGLE_API_KEY / GEMINI_API_KEY from the environment.
	geminiClientConfig *genai.ClientConfig
	// generateContentConfig overrides the per-call generation config.
	generateContentConfig *genai.GenerateContentConfig
}

var defaultOptions = options{
	model: defaultModel,
}

// Option is a function that configures a Gemini generator.
type Option func(*options)

// WithModel sets the Gemini model name, "gemini-2.5-flash-image" by default.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithGeminiClientConfig sets the ClientConfig used for gemini Client initialization.
func WithGeminiClientConfig(c *genai.ClientConfig) Option {
	return func(o *options) {
		o.geminiClientConfig = c
	}
}

// WithGenerateContentConfig sets the per-call generation config.
// The default requests both text and image response modalities.
func WithGenerateContentConfig(c *genai.GenerateContentConfig) Option {
	return func(o *options) {
		o.generateContentConfig = c
	}
}
