// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoImageURLs is returned when a manual URL list has no usable line.
var ErrNoImageURLs = errors.New("Please enter at least one valid image URL")

// InvalidURLsError lists manual image URLs that failed to parse.
type InvalidURLsError struct {
	URLs []string
}

func (e *InvalidURLsError) Error() string {
	return "Some URLs are invalid: " + strings.Join(e.URLs, ", ")
}

// FileError ties an upload failure to the submitted file name.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("File %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
