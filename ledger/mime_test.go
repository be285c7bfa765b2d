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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtensionForMIME(t *testing.T) {
	cases := []struct {
		mimeType string
		expected string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"image/bmp", ".bmp"},
		{"image/tiff", ".tiff"},
		{"image/svg+xml", ".svg"},
		{"IMAGE/JPEG", ".jpg"},
		{" image/png ", ".png"},
		{"image/x-unknown", ".png"},
		{"", ".png"},
	}

	for _, c := range cases {
		require.Equal(t, c.expected, ExtensionForMIME(c.mimeType), "mime type %q", c.mimeType)
	}
}

func TestUploadFilename(t *testing.T) {
	require.Equal(t, "image_1.jpg", UploadFilename(1, "image/jpeg"))
	require.Equal(t, "image_7.png", UploadFilename(7, "image/x-unknown"))
}

func TestIndexNotFoundError(t *testing.T) {
	err := &IndexNotFoundError{Index: 5, Valid: []int{1, 2}}
	require.Equal(t, "image #5 not found: valid indices are 1, 2", err.Error())

	err = &IndexNotFoundError{Index: 1}
	require.Equal(t, "image #1 not found: no images uploaded yet", err.Error())
}
