//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
)

var testSession = artifact.SessionInfo{
	AppName:   "testapp",
	UserID:    "user1",
	SessionID: "session1",
}

func TestSaveArtifact_VersionsIncreaseFromOne(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		version, err := s.SaveArtifact(ctx, testSession, "test.png", &artifact.Artifact{
			Data:     []byte("payload" + strconv.Itoa(i)),
			MimeType: "image/png",
		})
		require.NoError(t, err)
		require.Equal(t, i+1, version)
	}

	versions, err := s.ListVersions(ctx, testSession, "test.png")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, versions)
}

func TestLoadArtifact(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.SaveArtifact(ctx, testSession, "test.png", &artifact.Artifact{
			Data:     []byte("payload" + strconv.Itoa(i)),
			MimeType: "image/png",
		})
		require.NoError(t, err)
	}

	// Omitting the version loads the highest stored one.
	latest, err := s.LoadArtifact(ctx, testSession, "test.png", nil)
	require.NoError(t, err)
	require.Equal(t, []byte("payload2"), latest.Data)
	require.Equal(t, 3, latest.Version)
	require.Equal(t, "test.png", latest.Name)
	require.False(t, latest.CreatedAt.IsZero())

	for i := 1; i <= 3; i++ {
		got, err := s.LoadArtifact(ctx, testSession, "test.png", &i)
		require.NoError(t, err)
		require.Equal(t, []byte("payload"+strconv.Itoa(i-1)), got.Data)
		require.Equal(t, i, got.Version)
	}
}

func TestLoadArtifact_NotFound(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	_, err := s.LoadArtifact(ctx, testSession, "missing.png", nil)
	require.ErrorIs(t, err, artifact.ErrNotFound)

	_, err = s.SaveArtifact(ctx, testSession, "test.png", &artifact.Artifact{Data: []byte("x")})
	require.NoError(t, err)

	bad := 2
	_, err = s.LoadArtifact(ctx, testSession, "test.png", &bad)
	require.ErrorIs(t, err, artifact.ErrNotFound)

	bad = 0
	_, err = s.LoadArtifact(ctx, testSession, "test.png", &bad)
	require.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestSaveArtifact_Validation(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	_, err := s.SaveArtifact(ctx, testSession, "test.png", nil)
	require.ErrorIs(t, err, artifact.ErrNilArtifact)

	_, err = s.SaveArtifact(ctx, testSession, "", &artifact.Artifact{Data: []byte("x")})
	require.ErrorIs(t, err, artifact.ErrEmptyFilename)
}

func TestListArtifactKeys_SessionScoped(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	other := artifact.SessionInfo{AppName: "testapp", UserID: "user1", SessionID: "session2"}

	_, err := s.SaveArtifact(ctx, testSession, "b.png", &artifact.Artifact{Data: []byte("x")})
	require.NoError(t, err)
	_, err = s.SaveArtifact(ctx, testSession, "a.png", &artifact.Artifact{Data: []byte("x")})
	require.NoError(t, err)
	_, err = s.SaveArtifact(ctx, other, "c.png", &artifact.Artifact{Data: []byte("x")})
	require.NoError(t, err)

	keys, err := s.ListArtifactKeys(ctx, testSession)
	require.NoError(t, err)
	require.Equal(t, []string{"a.png", "b.png"}, keys)

	keys, err = s.ListArtifactKeys(ctx, other)
	require.NoError(t, err)
	require.Equal(t, []string{"c.png"}, keys)
}

func TestSaveArtifact_ConcurrentSameKey(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	const writers = 16
	got := make([]int, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			version, err := s.SaveArtifact(ctx, testSession, "test.png", &artifact.Artifact{
				Data: []byte("x"),
			})
			require.NoError(t, err)
			got[i] = version
		}(i)
	}
	wg.Wait()

	// Every writer observed a distinct version; together they cover 1..N.
	seen := make(map[int]bool, writers)
	for _, v := range got {
		require.False(t, seen[v], "duplicate version %d", v)
		seen[v] = true
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, writers)
	}
}

func TestSaveArtifact_StoredCopyIsImmutable(t *testing.T) {
	s := NewService()
	ctx := context.Background()

	in := &artifact.Artifact{Data: []byte("x"), MimeType: "image/png"}
	_, err := s.SaveArtifact(ctx, testSession, "test.png", in)
	require.NoError(t, err)

	// Caller's value keeps its zero version.
	require.Zero(t, in.Version)

	stored, err := s.LoadArtifact(ctx, testSession, "test.png", nil)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Version)
}
