//
// Tencent is pleased to support the open source community by making trpc-imagestudio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-imagestudio-go is licensed under the Apache License Version 2.0.
//
//

// Package artifact provides object naming helpers shared by artifact
// service backends. Objects are addressed as
// {app_name}/{user_id}/{session_id}/{filename}/{version}.
package artifact

import (
	"fmt"

	"trpc.group/trpc-go/trpc-imagestudio-go/artifact"
)

// BuildObjectName constructs the full object name for one version of an artifact.
func BuildObjectName(sessionInfo artifact.SessionInfo, filename string, version int) string {
	return fmt.Sprintf("%s/%d", BuildObjectNamePrefix(sessionInfo, filename), version)
}

// BuildObjectNamePrefix constructs the prefix shared by all versions of an artifact.
func BuildObjectNamePrefix(sessionInfo artifact.SessionInfo, filename string) string {
	return fmt.Sprintf("%s%s", BuildSessionPrefix(sessionInfo), filename)
}

// BuildSessionPrefix constructs the prefix shared by all artifacts of a session.
func BuildSessionPrefix(sessionInfo artifact.SessionInfo) string {
	return fmt.Sprintf("%s/%s/%s/", sessionInfo.AppName, sessionInfo.UserID, sessionInfo.SessionID)
}
