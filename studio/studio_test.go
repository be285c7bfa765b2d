//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package studio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	artifactinmemory "trpc.group/trpc-go/trpc-imagestudio-go/artifact/inmemory"
	"trpc.group/trpc-go/trpc-imagestudio-go/generation"
	ledgerinmemory "trpc.group/trpc-go/trpc-imagestudio-go/ledger/inmemory"
	"trpc.group/trpc-go/trpc-imagestudio-go/resolver"
	"trpc.group/trpc-go/trpc-imagestudio-go/transform"
)

var testSession = artifact.SessionInfo{
	AppName:   "testapp",
	UserID:    "user1",
	SessionID: "session1",
}

type fakeGenerator struct {
	result *generation.Result
}

func (f *fakeGenerator) Generate(ctx context.Context, req *generation.Request) (*generation.Result, error) {
	return f.result, nil
}

func newTestStudio(t *testing.T, gen generation.Generator) *Studio {
	t.Helper()
	store := artifactinmemory.NewService()
	s, err := New(ledgerinmemory.NewService(store), store, gen)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestUploadImage(t *testing.T) {
	s := newTestStudio(t, &fakeGenerator{})
	ctx := context.Background()

	rsp, err := s.UploadImage(ctx, testSession, &UploadImageRequest{
		MimeType: "image/jpeg",
		Data:     []byte("img"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, rsp.Index)
	require.Equal(t, "image_1.jpg", rsp.Filename)
	require.Equal(t, "Saved image #1 as image_1.jpg. It is now the current image.", rsp.Message)

	// Empty data surfaces as an error message plus the error itself.
	rsp, err = s.UploadImage(ctx, testSession, &UploadImageRequest{MimeType: "image/png"})
	require.Error(t, err)
	require.Contains(t, rsp.Message, "Error:")
}

func TestListImages(t *testing.T) {
	s := newTestStudio(t, &fakeGenerator{})
	ctx := context.Background()

	rsp, err := s.ListImages(ctx, testSession)
	require.NoError(t, err)
	require.Empty(t, rsp.Images)
	require.Equal(t, "No images uploaded yet.", rsp.Message)

	_, err = s.UploadImage(ctx, testSession, &UploadImageRequest{MimeType: "image/png", Data: []byte("a")})
	require.NoError(t, err)
	_, err = s.UploadImage(ctx, testSession, &UploadImageRequest{MimeType: "image/jpeg", Data: []byte("b")})
	require.NoError(t, err)

	rsp, err = s.ListImages(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, rsp.Images, 2)
	require.Equal(t, 2, rsp.CurrentIndex)
	require.Contains(t, rsp.Message, "#1 image_1.png (image/png)")
	require.Contains(t, rsp.Message, "#2 image_2.jpg (image/jpeg) (current)")
}

func TestTransform_Messages(t *testing.T) {
	gen := &fakeGenerator{result: &generation.Result{
		Image: &generation.Image{Data: []byte("out"), MimeType: "image/png"},
	}}
	s := newTestStudio(t, gen)
	ctx := context.Background()

	// Nothing to transform yet.
	rsp, err := s.Transform(ctx, testSession, &TransformRequest{CharacterOrStyle: "vampire"})
	require.NoError(t, err)
	require.Equal(t, transform.OutcomeNoImage, rsp.Outcome)
	require.Contains(t, rsp.Message, "Upload an image first")

	_, err = s.UploadImage(ctx, testSession, &UploadImageRequest{MimeType: "image/png", Data: []byte("src")})
	require.NoError(t, err)

	rsp, err = s.Transform(ctx, testSession, &TransformRequest{
		CharacterOrStyle: "vampire",
		Description:      "moonlit castle",
	})
	require.NoError(t, err)
	require.Equal(t, transform.OutcomeCreated, rsp.Outcome)
	require.Equal(t, 1, rsp.SourceIndex)
	require.Contains(t, rsp.Message, "from image #1")
	require.Contains(t, rsp.Filename, "vampire-moonlit-castle-")

	// An explicit miss enumerates the valid indices.
	nine := 9
	rsp, err = s.Transform(ctx, testSession, &TransformRequest{CharacterOrStyle: "witch", ImageIndex: &nine})
	require.NoError(t, err)
	require.Equal(t, transform.OutcomeNotFound, rsp.Outcome)
	require.Contains(t, rsp.Message, "valid indices are 1")
}

func TestTransform_EmptyGenerationMessage(t *testing.T) {
	gen := &fakeGenerator{result: &generation.Result{Text: "content policy"}}
	s := newTestStudio(t, gen)
	ctx := context.Background()

	rsp, err := s.Transform(ctx, testSession, &TransformRequest{
		CharacterOrStyle: "ghost",
		Attachment:       &resolver.Attachment{MimeType: "image/png", Data: []byte("fresh")},
	})
	require.NoError(t, err)
	require.Equal(t, transform.OutcomeEmpty, rsp.Outcome)
	require.Contains(t, rsp.Message, "returned no image")
	require.Contains(t, rsp.Message, "content policy")
}

func TestClearImages(t *testing.T) {
	s := newTestStudio(t, &fakeGenerator{})
	ctx := context.Background()

	rsp, err := s.ClearImages(ctx, testSession)
	require.NoError(t, err)
	require.Zero(t, rsp.Removed)
	require.Equal(t, "No images to clear.", rsp.Message)

	_, err = s.UploadImage(ctx, testSession, &UploadImageRequest{MimeType: "image/png", Data: []byte("a")})
	require.NoError(t, err)
	_, err = s.UploadImage(ctx, testSession, &UploadImageRequest{MimeType: "image/png", Data: []byte("b")})
	require.NoError(t, err)

	rsp, err = s.ClearImages(ctx, testSession)
	require.NoError(t, err)
	require.Equal(t, 2, rsp.Removed)
	require.Equal(t, "Cleared 2 uploaded image(s).", rsp.Message)

	list, err := s.ListImages(ctx, testSession)
	require.NoError(t, err)
	require.Empty(t, list.Images)
}
