//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package transform

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-imagestudio-go/ledger"
)

// maxSlugLen caps the style portion of synthesized filenames.
const maxSlugLen = 40

// fallbackSlug is used when the style text yields no usable characters.
const fallbackSlug = "styled"

// styleSlug converts free style text into a safe filename fragment:
// lowercase alphanumerics with single dashes between words.
func styleSlug(style string) string {
	var b strings.Builder
	lastDash := true // swallow leading separators
	for _, r := range strings.ToLower(style) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	if s == "" {
		return fallbackSlug
	}
	return s
}

// resultFilename synthesizes a unique storage filename for a generated
// image from the style slug, a random suffix and the result MIME type.
func resultFilename(style, mimeType string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s%s", styleSlug(style), suffix, ledger.ExtensionForMIME(mimeType))
}
