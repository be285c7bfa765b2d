//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package cos

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
)

func TestNewService_Options(t *testing.T) {
	s := NewService("https://bucket.cos.ap-guangzhou.myqcloud.com",
		WithSecretID("id"),
		WithSecretKey("key"),
		WithTimeout(5*time.Second),
	)
	require.NotNil(t, s)
	require.NotNil(t, s.cosClient)

	// A caller-provided client without a timeout gets the default applied
	// to a copy, not to the caller's client.
	provided := &http.Client{}
	s = NewService("https://bucket.cos.ap-guangzhou.myqcloud.com",
		WithHTTPClient(provided),
	)
	require.NotNil(t, s)
	require.Zero(t, provided.Timeout)
}

func TestSaveArtifact_Validation(t *testing.T) {
	s := NewService("https://bucket.cos.ap-guangzhou.myqcloud.com")

	_, err := s.SaveArtifact(context.Background(), artifact.SessionInfo{}, "a.png", nil)
	require.ErrorIs(t, err, artifact.ErrNilArtifact)

	_, err = s.SaveArtifact(context.Background(), artifact.SessionInfo{}, "", &artifact.Artifact{})
	require.ErrorIs(t, err, artifact.ErrEmptyFilename)
}

// TestArtifact_SessionScope exercises the full save/load/list cycle
// against a real bucket. It needs COS credentials and a bucket URL.
func TestArtifact_SessionScope(t *testing.T) {
	bucketURL := os.Getenv("COS_TEST_BUCKET_URL")
	if bucketURL == "" || os.Getenv("COS_SECRETID") == "" || os.Getenv("COS_SECRETKEY") == "" {
		t.Skip("Skipping COS integration test, need COS_TEST_BUCKET_URL, COS_SECRETID and COS_SECRETKEY")
	}
	s := NewService(bucketURL)
	sessionInfo := artifact.SessionInfo{
		AppName:   "testapp",
		UserID:    "user1",
		SessionID: "session1",
	}
	key := "test.png"

	for i := 0; i < 3; i++ {
		version, err := s.SaveArtifact(context.Background(), sessionInfo, key, &artifact.Artifact{
			Data:     []byte("Hello, World!" + strconv.Itoa(i)),
			MimeType: "image/png",
		})
		require.NoError(t, err)
		require.Equal(t, i+1, version)
	}

	versions, err := s.ListVersions(context.Background(), sessionInfo, key)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, versions)

	latest, err := s.LoadArtifact(context.Background(), sessionInfo, key, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("Hello, World!2"), latest.Data)
	require.Equal(t, 3, latest.Version)

	for i := 1; i <= 3; i++ {
		got, err := s.LoadArtifact(context.Background(), sessionInfo, key, &i)
		require.NoError(t, err)
		require.Equal(t, []byte("Hello, World!"+strconv.Itoa(i-1)), got.Data)
	}

	keys, err := s.ListArtifactKeys(context.Background(), sessionInfo)
	require.NoError(t, err)
	require.Contains(t, keys, key)

	_, err = s.LoadArtifact(context.Background(), sessionInfo, "does-not-exist.png", nil)
	require.ErrorIs(t, err, artifact.ErrNotFound)
}
