//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package cos provides a Tencent Cloud Object Storage (COS) implementation of the artifact service.
//
// Objects are named {app_name}/{user_id}/{session_id}/{filename}/{version},
// with versions starting at 1. The store is append-only: nothing here ever
// deletes an object.
//
// Authentication:
// The service requires COS credentials which can be provided via:
// - Environment variables: COS_SECRETID and COS_SECRETKEY (recommended)
// - Option functions: WithSecretID() and WithSecretKey()
//
// Example:
//
//	// Set environment variables
//	export COS_SECRETID="your-secret-id"
//	export COS_SECRETKEY="your-secret-key"
//
//	// Create service
//	service := cos.NewService("https://bucket.cos.region.myqcloud.com")
package cos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
	iartifact "trpc.group/trpc-go/trpc-imagestudio-go/internal/artifact"
)

var _ artifact.Service = (*Service)(nil)

// Service is a Tencent Cloud Object Storage implementation of the artifact service.
// It provides cloud-based storage for artifacts using Tencent COS.
//
// Version assignment lists existing versions and takes max+1, so writes to
// the same (session, filename) key must be serialized by the caller — the
// ledger's per-session lock provides that discipline. Reads from any number
// of sessions are safe concurrently.
type Service struct {
	cosClient *cos.Client
}

const defaultTimeout = 60 * time.Second

// NewService creates a new COS artifact service with optional configurations.
//
// Authentication credentials can be provided in two ways:
// 1. Set environment variables COS_SECRETID and COS_SECRETKEY (recommended)
// 2. Use WithSecretID() and WithSecretKey() options
//
// Example usage:
//
//	// Using environment variables (set COS_SECRETID and COS_SECRETKEY)
//	service := cos.NewService("https://bucket.cos.region.myqcloud.com")
//
//	// Using option functions
//	service := cos.NewService(
//	    "https://bucket.cos.region.myqcloud.com",
//	    cos.WithSecretID("your-secret-id"),
//	    cos.WithSecretKey("your-secret-key"),
//	    cos.WithTimeout(30*time.Second),
//	)
func NewService(bucketURL string, opts ...Option) *Service {
	// Set default options
	options := &options{
		timeout:   defaultTimeout,
		secretID:  os.Getenv("COS_SECRETID"),
		secretKey: os.Getenv("COS_SECRETKEY"),
	}

	// Apply provided options
	for _, opt := range opts {
		opt(options)
	}

	u, _ := url.Parse(bucketURL)
	b := &cos.BaseURL{BucketURL: u}

	// Use provided HTTP client or create a default one
	var httpClient *http.Client
	if options.httpClient != nil {
		httpClient = options.httpClient
		// If user provided their own client but no timeout was explicitly set,
		// and the client doesn't have a timeout, set our default timeout
		if httpClient.Timeout == 0 && options.timeout > 0 {
			// Create a copy to avoid modifying the user's client
			httpClient = &http.Client{
				Timeout:   options.timeout,
				Transport: httpClient.Transport,
			}
		}
	} else {
		// Create default HTTP client with COS authentication
		httpClient = &http.Client{
			Timeout: options.timeout,
			Transport: &cos.AuthorizationTransport{
				SecretID:  options.secretID,
				SecretKey: options.secretKey,
			},
		}
	}

	return &Service{
		cosClient: cos.NewClient(b, httpClient),
	}
}

// SaveArtifact saves an artifact to Tencent Cloud Object Storage.
func (s *Service) SaveArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string, art *artifact.Artifact) (int, error) {
	if art == nil {
		return 0, artifact.ErrNilArtifact
	}
	if filename == "" {
		return 0, artifact.ErrEmptyFilename
	}

	// Get existing versions to determine the next version number
	versions, err := s.ListVersions(ctx, sessionInfo, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to list versions: %w", err)
	}

	version := 1
	for _, v := range versions {
		if v >= version {
			version = v + 1
		}
	}

	objectName := iartifact.BuildObjectName(sessionInfo, filename, version)

	// Upload the artifact data
	reader := bytes.NewReader(art.Data)
	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: art.MimeType,
		},
	}

	if _, err := s.cosClient.Object.Put(ctx, objectName, reader, opt); err != nil {
		return 0, fmt.Errorf("failed to upload artifact: %w", err)
	}

	return version, nil
}

// LoadArtifact gets an artifact from Tencent Cloud Object Storage.
func (s *Service) LoadArtifact(ctx context.Context, sessionInfo artifact.SessionInfo, filename string, version *int) (*artifact.Artifact, error) {
	var targetVersion int

	if version == nil {
		// Get the latest version
		versions, err := s.ListVersions(ctx, sessionInfo, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to list versions: %w", err)
		}
		if len(versions) == 0 {
			return nil, artifact.ErrNotFound
		}
		targetVersion = versions[len(versions)-1]
	} else {
		targetVersion = *version
	}

	objectName := iartifact.BuildObjectName(sessionInfo, filename, targetVersion)

	// Download the artifact
	resp, err := s.cosClient.Object.Get(ctx, objectName, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, artifact.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download artifact: %w", err)
	}
	defer resp.Body.Close()

	// Read the data
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact data: %w", err)
	}

	// Get content type from response headers
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &artifact.Artifact{
		Data:     data,
		MimeType: contentType,
		Name:     filename,
		Version:  targetVersion,
	}, nil
}

// ListArtifactKeys lists all the artifact filenames within a session from COS.
func (s *Service) ListArtifactKeys(ctx context.Context, sessionInfo artifact.SessionInfo) ([]string, error) {
	sessionPrefix := iartifact.BuildSessionPrefix(sessionInfo)
	result, _, err := s.cosClient.Bucket.Get(ctx, &cos.BucketGetOptions{
		Prefix: sessionPrefix,
	})
	if err != nil && !cos.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to list session artifacts: %w", err)
	}

	filenameSet := make(map[string]bool)
	if result != nil {
		for _, obj := range result.Contents {
			parts := strings.Split(obj.Key, "/")
			if len(parts) >= 4 {
				filename := parts[len(parts)-2] // filename is before version
				filenameSet[filename] = true
			}
		}
	}

	// Convert set to sorted slice
	filenames := make([]string, 0, len(filenameSet))
	for filename := range filenameSet {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)

	return filenames, nil
}

// ListVersions lists all versions of an artifact from COS in increasing order.
func (s *Service) ListVersions(ctx context.Context, sessionInfo artifact.SessionInfo, filename string) ([]int, error) {
	prefix := iartifact.BuildObjectNamePrefix(sessionInfo, filename)

	result, _, err := s.cosClient.Bucket.Get(ctx, &cos.BucketGetOptions{
		Prefix: prefix,
	})
	if err != nil {
		if cos.IsNotFoundError(err) {
			return []int{}, nil // No versions found
		}
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	versions := make([]int, 0, len(result.Contents))
	for _, obj := range result.Contents {
		parts := strings.Split(obj.Key, "/")
		if len(parts) > 0 {
			versionStr := parts[len(parts)-1]
			if version, err := strconv.Atoi(versionStr); err == nil {
				versions = append(versions, version)
			}
		}
	}
	sort.Ints(versions)
	return versions, nil
}
