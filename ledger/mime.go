//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package ledger

import (
	"fmt"
	"strings"
)

// mimeExtensions maps image MIME types to storage filename extensions.
var mimeExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/svg+xml": ".svg",
}

// defaultExtension is used for unrecognized MIME types.
const defaultExtension = ".png"

// ExtensionForMIME returns the filename extension for a MIME type,
// falling back to ".png" for unrecognized types.
func ExtensionForMIME(mimeType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(strings.TrimSpace(mimeType))]; ok {
		return ext
	}
	return defaultExtension
}

// UploadFilename derives the deterministic storage filename for the
// upload with the given index and MIME type.
func UploadFilename(index int, mimeType string) string {
	return fmt.Sprintf("image_%d%s", index, ExtensionForMIME(mimeType))
}
