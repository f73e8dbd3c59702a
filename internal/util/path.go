// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// FileExtension returns the lowercased extension of name without the dot,
// taken from the part after the last dot like the upload naming expects.
// A name without a dot yields "".
func FileExtension(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// CleanObjectPath validates a slash-separated object key such as
// "products/1700000000000-uuid.jpg". Absolute keys, empty keys, backslashes
// and ".." segments are rejected.
func CleanObjectPath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty object path")
	}
	if strings.ContainsRune(key, '\\') || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("invalid object path: %q", key)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("object path must be relative: %q", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("path traversal detected: %q", key)
		}
	}
	cleaned := path.Clean(key)
	if cleaned == "." {
		return "", fmt.Errorf("invalid object path: %q", key)
	}
	return cleaned, nil
}

// ValidatePathWithinBase ensures that targetPath resolves inside basePath.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// The separator suffix keeps "/storage-evil" from matching "/storage".
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: path escapes base directory")
	}

	return nil
}

// SafeJoinPath joins components onto basePath and rejects results outside it.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	fullPath := filepath.Join(append([]string{basePath}, components...)...)

	if err := ValidatePathWithinBase(basePath, fullPath); err != nil {
		return "", err
	}

	return fullPath, nil
}
