// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
)

// RecordEvent inserts an event like CreateEvent. If the referenced user no
// longer exists the event is stored without the user reference and the id is
// kept in the metadata instead, so the record itself is never lost.
func (q *Queries) RecordEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	ev, err := q.CreateEvent(ctx, arg)
	if err == nil || !arg.UserID.Valid || !IsForeignKeyError(err) {
		return ev, err
	}

	arg.Metadata = withUserID(arg.Metadata, arg.UserID.Int64)
	arg.UserID = sql.NullInt64{}
	return q.CreateEvent(ctx, arg)
}

// IsForeignKeyError reports whether err is a SQLite foreign key violation.
func IsForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func withUserID(metadata string, userID int64) string {
	m := map[string]any{}
	if metadata != "" {
		_ = json.Unmarshal([]byte(metadata), &m)
	}
	if _, ok := m["user_id"]; !ok {
		m["user_id"] = strconv.FormatInt(userID, 10)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return metadata
	}
	return string(b)
}
