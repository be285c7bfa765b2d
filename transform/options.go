//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package transform

// options holds the configuration options for the orchestrator.
type options struct {
	// maxConcurrentGenerations bounds in-flight generation calls across
	// all sessions. Zero means unbounded.
	maxConcurrentGenerations int
}

// Option is a function that configures an orchestrator.
type Option func(*options)

// WithMaxConcurrentGenerations bounds the number of generation calls in
// flight across all sessions. The bound applies only to the outbound
// model call; ledger and store state are never gated on it. Zero or
// negative leaves generation unbounded.
func WithMaxConcurrentGenerations(n int) Option {
	return func(o *options) {
		o.maxConcurrentGenerations = n
	}
}
