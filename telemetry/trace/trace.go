//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package trace provides the tracer used to instrument this library.
package trace

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentName identifies this library in exported spans.
const InstrumentName = "trpc.group/trpc-go/trpc-imagestudio-go"

// Tracer is the tracer used by this library. It resolves through the
// globally registered tracer provider, so applications that install
// their own provider pick up these spans automatically.
var Tracer trace.Tracer = otel.Tracer(InstrumentName)
