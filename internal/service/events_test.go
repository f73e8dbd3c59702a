// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsaka/atsaka-web/internal/model"
	"github.com/atsaka/atsaka-web/internal/testutil"
)

func TestEventService_LogAndList(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewEventService(db, testutil.TestLogger())
	ctx := context.Background()

	userID := testutil.CreateUser(t, db, "admin@atsaka.co.id")
	require.NoError(t, svc.LogAuthEvent(ctx, model.EventLevelInfo, "User logged in", &userID, map[string]any{"email": "admin@atsaka.co.id"}))
	require.NoError(t, svc.LogWarning(ctx, model.EventCategoryStorage, "failed to delete old image", nil, nil))
	require.NoError(t, svc.LogEvent(ctx, model.EventLevelError, model.EventCategoryProduct, "saving product failed", nil, nil))

	all, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)

	var login Event
	for _, e := range all {
		if e.Category == model.EventCategoryAuth {
			login = e
		}
	}
	assert.Equal(t, userID, login.UserID)
	assert.Equal(t, "admin@atsaka.co.id", login.Metadata["email"])
	assert.False(t, login.IsProblem())

	problems, err := svc.ListProblems(ctx, 10)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	for _, e := range problems {
		assert.True(t, e.IsProblem())
	}
}

func TestEventService_DeletedUser(t *testing.T) {
	svc := NewEventService(testutil.TestDB(t), testutil.TestLogger())
	ctx := context.Background()

	gone := int64(404)
	require.NoError(t, svc.LogAuthEvent(ctx, model.EventLevelWarning, "session user not found, signing out", &gone, nil))

	events, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Zero(t, events[0].UserID)
	assert.Equal(t, "404", events[0].Metadata["user_id"])
}

func TestEventService_DeleteOlderThan(t *testing.T) {
	svc := NewEventService(testutil.TestDB(t), testutil.TestLogger())
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return now.Add(-45 * 24 * time.Hour) }
	require.NoError(t, svc.LogInfo(ctx, model.EventCategorySystem, "old", nil, nil))
	svc.now = func() time.Time { return now.Add(-time.Hour) }
	require.NoError(t, svc.LogInfo(ctx, model.EventCategorySystem, "fresh", nil, nil))

	svc.now = func() time.Time { return now }
	n, err := svc.DeleteOlderThan(ctx, DefaultEventRetention)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].Message)
}
