// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atsaka/atsaka-web/internal/model"
)

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Pompa Diesel 500 GPM", Category: model.CategoryPump, Description: "Pompa utama"},
		{ID: 2, Name: "Hydrant Pillar", Category: model.CategoryEquipment, Description: "Pilar hidran dua arah"},
		{ID: 3, Name: "Nozzle Jet Spray", Category: model.CategoryAccessory, Description: "Nozzle kuningan"},
		{ID: 4, Name: "Pompa Jockey", Category: model.CategoryPump, Description: "Penjaga tekanan"},
	}
}

func TestFilterProducts(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name   string
		filter ProductFilter
		want   []int64
	}{
		{"no filter", ProductFilter{}, []int64{1, 2, 3, 4}},
		{"category", ProductFilter{Category: model.CategoryPump}, []int64{1, 4}},
		{"search name case-insensitive", ProductFilter{Search: "HYDRANT"}, []int64{2}},
		{"search description", ProductFilter{Search: "kuningan"}, []int64{3}},
		{"search category slug", ProductFilter{Search: "equip"}, []int64{2}},
		{"category and search", ProductFilter{Category: model.CategoryPump, Search: "jockey"}, []int64{4}},
		{"nothing matches", ProductFilter{Category: model.CategoryEquipment, Search: "pompa"}, []int64{}},
		{"unknown category", ProductFilter{Category: "tidak-ada"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, tt.filter)
			ids := make([]int64, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestProductFilter_IsEmpty(t *testing.T) {
	assert.True(t, ProductFilter{Search: "   "}.IsEmpty())
	assert.False(t, ProductFilter{Category: "pump"}.IsEmpty())
}

func TestCategoryCounts(t *testing.T) {
	counts := CategoryCounts(sampleProducts())
	assert.Equal(t, 2, counts[model.CategoryPump])
	assert.Equal(t, 1, counts[model.CategoryEquipment])
	assert.Equal(t, 0, counts["missing"])
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, []int{1, 2, 3}, p.Pages())

	last := Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, last.Items)
	assert.False(t, last.HasNext())
}

func TestPaginate_Clamps(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Equal(t, 1, Paginate(items, -4, 2).Page)
	high := Paginate(items, 99, 2)
	assert.Equal(t, 2, high.Page)
	assert.Equal(t, []string{"c"}, high.Items)

	empty := Paginate([]string{}, 5, 9)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)

	assert.Equal(t, DefaultProductsPerPage, Paginate(items, 1, 0).PerPage)
}
