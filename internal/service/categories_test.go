// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsaka/atsaka-web/internal/testutil"
)

func TestCategoryService(t *testing.T) {
	svc := NewCategoryService(testutil.TestDB(t), newTestCatalog(), testutil.TestLogger())
	ctx := context.Background()

	cat, err := svc.Save(ctx, SaveCategoryInput{Name: " Pompa Pemadam ", Description: "Pompa kebakaran"})
	require.NoError(t, err)
	assert.Equal(t, "Pompa Pemadam", cat.Name)
	assert.Equal(t, "pompa-pemadam", cat.Slug)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.Save(ctx, SaveCategoryInput{ID: cat.ID, Name: "Peralatan Hidran"})
	require.NoError(t, err)
	assert.Equal(t, "peralatan-hidran", updated.Slug)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Peralatan Hidran", list[0].Name)

	_, err = svc.Save(ctx, SaveCategoryInput{ID: 404, Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, cat.ID))
	_, err = svc.Get(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCategoryService_ReferencedImageURLs(t *testing.T) {
	svc := NewCategoryService(testutil.TestDB(t), newTestCatalog(), testutil.TestLogger())
	ctx := context.Background()

	_, err := svc.Save(ctx, SaveCategoryInput{Name: "Pompa", ImageURL: "/storage/v1/object/public/product-images/products/a.jpg"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, SaveCategoryInput{Name: "Aksesoris"})
	require.NoError(t, err)

	urls, err := svc.ReferencedImageURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/storage/v1/object/public/product-images/products/a.jpg"}, urls)
}
