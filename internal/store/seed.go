// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atsaka/atsaka-web/internal/auth"
)

// DefaultAdminName is the display name of the seeded admin account.
const DefaultAdminName = "Administrator"

// SeedOptions controls what Seed creates.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	// Catalog seeds reference categories, products and gallery entries
	// when the products table is empty.
	Catalog bool
}

// Seed creates the admin user and, optionally, the reference catalog.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	queries := New(db)

	if err := seedAdmin(ctx, queries, opts.AdminEmail, opts.AdminPassword); err != nil {
		return err
	}

	if !opts.Catalog {
		return nil
	}

	count, err := queries.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		slog.Debug("catalog already populated, skipping seed", "products", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedCatalog(ctx, queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded reference catalog",
		"categories", len(seedCategories),
		"products", len(seedProducts),
		"gallery", len(seedGallery))
	return nil
}

func seedAdmin(ctx context.Context, queries *Queries, email, password string) error {
	_, err := queries.GetUserByEmail(ctx, email)
	if err == nil {
		slog.Debug("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}

type seedSpec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type seedProduct struct {
	Name        string
	Slug        string
	Category    string
	Description string
	Features    []string
	ImageURLs   []string
	Specs       []seedSpec
}

var seedCategories = []CreateCategoryParams{
	{Name: "Pompa Pemadam", Slug: "pump", Description: "Pompa pemadam kebakaran portabel dan apung."},
	{Name: "Peralatan", Slug: "equipment", Description: "Peralatan pendukung operasi pemadaman."},
	{Name: "Aksesoris", Slug: "aksesori", Description: "Aksesoris dan perlengkapan tangan."},
}

var seedProducts = []seedProduct{
	{
		Name:     "Atsaka Portable High Pressure Fire Floating Pump Honda GXV160",
		Slug:     "honda-gxv160",
		Category: "pump",
		Description: "KAIGUN Pro adalah produk lokal pompa apung ATSAKA dengan di perkuat dengan engine dari Honda GXV160 " +
			"bertenaga 4,3 HP yang bersertifikat OEM. Pompa ini mampu mengeluarkan air bertekanan tinggi hingga 5 Bar " +
			"yang mampu menjangkau hingga 32 meter. Pompa ini memiliki tanki tambahan yang mampu memperpanjang waktu operasional.",
		Features: []string{"Fitur A", "Fitur B"},
		ImageURLs: []string{
			"https://images.tokopedia.net/img/cache/900/VqbcmM/2024/10/21/f02dff17-be1e-405a-a681-58dd72a17c8e.jpg",
			"https://images.tokopedia.net/img/cache/900/VqbcmM/2024/10/21/7688b57b-862c-48c4-accb-ec55893b0aec.jpg",
		},
		Specs: []seedSpec{
			{"Model", "Honda GXV160"},
			{"Engine type", "Aircooled 4stroke OHV"},
			{"Bore x Stroke", "68 x 45 mm"},
			{"Displacement", "163 cm3"},
			{"Net power output", "4.3 hp (3.2kW)@ 3.600 rpm"},
			{"Normal operating engine speed", "2970 rpm"},
		},
	},
	{
		Name:     "ATSAKA Pompa Punggung / Backpack Jet Shooter",
		Slug:     "atsaka-pompa-punggung",
		Category: "aksesori",
		Description: "Pompa punggung merupakan peralatan tangan (hand tools) yang digunakan untuk pemadaman kebakaran hutan " +
			"dan lahan terutama untuk memadamkan jenis api permukaan sangat tinggi 1-1,5m dan akan lebih efektif jika " +
			"digunakan bersinergi dengan alat lainnya seperti kepyok.",
		Features: []string{
			"Bahan tahan api yang tahan lama",
			"Desain ergonomis dengan tali bahu berlapis busa",
			"Nozel yang dapat disesuaikan untuk kontrol pola semprotan",
			"Port pengisian cepat dengan filter",
			"Terlihat dalam kondisi cahaya redup",
		},
		ImageURLs: []string{
			"https://images.tokopedia.net/img/cache/500-square/VqbcmM/2024/7/26/4be6acd1-c610-4761-9def-08d3e5e5f149.jpg.webp?ect=4g",
			"https://images.tokopedia.net/img/cache/500-square/VqbcmM/2024/7/26/e48bda24-ec66-467c-baf7-d1273e75345f.jpg.webp?ect=4g",
		},
		Specs: []seedSpec{
			{"Material", "Rubber body"},
			{"Volume", "20 L"},
			{"Working pressure", "5 Bar"},
			{"Spray distance", "8 M"},
			{"Colour", "Yellow"},
			{"Transportation", "Tali dan Tangan"},
			{"Min Width", "435 mm"},
			{"Max Width", "625 mm"},
			{"Length", "665 mm"},
			{"Size", "62 x 32 x 68 mm"},
		},
	},
	{
		Name:     "Atsaka Engine ATS GX690",
		Slug:     "atsaka-engine-ats-gx690",
		Category: "pump",
		Description: "ATS GX690 adalah produk lokal ATSAKA dengan di perkuat dengan engine dari honda GX690 bertenaga 25 HP " +
			"yang bersertifikat OEM. Pompa ini mampu mengisap air hanya dengan 12 detik dengan sistem priming 3 blade rotary " +
			"dan mengeluarkan air bertekanan tinggi hingga 8 bar.",
		Features: []string{
			"Jaket luar tahan abrasi dan panas",
			"Ringan untuk manuver yang mudah",
			"Kopling sambungan cepat",
			"Desain kehilangan gesekan rendah",
			"Tersedia dalam berbagai panjang",
		},
		ImageURLs: []string{
			"https://images.tokopedia.net/img/cache/500-square/VqbcmM/2023/8/21/bec80311-1eb6-42cd-9666-25d297af8ca7.jpg.webp?ect=4g",
		},
		Specs: []seedSpec{
			{"Model", "Honda GX690"},
			{"Engine type", "4 stroke, overhead valve 90° vtwin cylinder"},
			{"Displacement (cm3)", "688 cm³"},
			{"Bore and stroke", "78.0 x 72 mm"},
			{"Compression ratio", "9.3"},
			{"Gross power (SAE J1995)", "18.75KW (25.0HP)/3600 rpm"},
			{"Fuel tank capacity", "10 liter"},
			{"Fuel consumption (@rated power)", "6.7 L/h"},
			{"Outlet", `camlock type A3"`},
			{"Vacuum pump", "3 blade rotary system"},
			{"Tekanan max.", "116 psi (8 bar) *shut on"},
			{"Priming performance", "12 sec (5 meter)"},
			{"Total weight", "80 kg"},
		},
	},
}

var seedGallery = []CreateGalleryItemParams{
	{
		Title:       "Field Training in Central Kalimantan",
		Description: "ATS GXV160, pompa apung ATSAKA dengan engine Honda GXV160 bertenaga 4,3 HP, mampu menjangkau hingga 32 meter.",
		Type:        "video",
		Url:         "xBCloLkp6vg",
		Category:    "product",
	},
	{
		Title:       "RINGAN DAN BERTENAGA - ATS GXH50",
		Description: "Pompa jinjing ATSAKA bertekanan tinggi hingga 5,5 Bar dengan beban ringan (11 kg).",
		Type:        "video",
		Url:         "01ESRYH9gfQ",
		Category:    "product",
	},
	{
		Title:       "Community Engagement Program",
		Description: "ATSAKA representatives training local communities on fire prevention techniques.",
		Type:        "photo",
		ImageUrl:    "https://images.pexels.com/photos/2661255/pexels-photo-2661255.jpeg",
		Category:    "training",
	},
	{
		Title:       "Equipment Testing",
		Description: "Quality assurance testing of new ATSAKA equipment before field deployment.",
		Type:        "photo",
		ImageUrl:    "https://images.pexels.com/photos/3817676/pexels-photo-3817676.jpeg",
		Category:    "product",
	},
	{
		Title:       "Fire Containment Operation",
		Description: "ATSAKA equipment being used in a successful fire containment operation in Sumatra.",
		Type:        "photo",
		ImageUrl:    "https://images.pexels.com/photos/1056553/pexels-photo-1056553.jpeg",
		Category:    "field",
	},
	{
		Title:       "Product Showcase Event",
		Description: "Annual product showcase featuring the latest ATSAKA firefighting innovations.",
		Type:        "photo",
		ImageUrl:    "https://images.pexels.com/photos/2381463/pexels-photo-2381463.jpeg",
		Category:    "product",
	},
}

func seedCatalog(ctx context.Context, queries *Queries) error {
	// Stagger timestamps so newest-first listings keep the reference order.
	base := time.Now().Add(-time.Hour)

	for i, c := range seedCategories {
		c.CreatedAt = base.Add(time.Duration(i) * time.Second)
		c.UpdatedAt = c.CreatedAt
		if _, err := queries.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("seeding category %q: %w", c.Slug, err)
		}
	}

	for i, p := range seedProducts {
		features, err := json.Marshal(p.Features)
		if err != nil {
			return fmt.Errorf("encoding features: %w", err)
		}
		imageURLs, err := json.Marshal(p.ImageURLs)
		if err != nil {
			return fmt.Errorf("encoding image urls: %w", err)
		}
		specs, err := json.Marshal(p.Specs)
		if err != nil {
			return fmt.Errorf("encoding specifications: %w", err)
		}
		created := base.Add(time.Duration(len(seedProducts)-i) * time.Minute)
		if _, err := queries.CreateProduct(ctx, CreateProductParams{
			Name:           p.Name,
			Slug:           p.Slug,
			Category:       p.Category,
			Description:    p.Description,
			Features:       string(features),
			ImageUrl:       p.ImageURLs[0],
			ImageUrls:      string(imageURLs),
			Specifications: string(specs),
			CreatedAt:      created,
			UpdatedAt:      created,
		}); err != nil {
			return fmt.Errorf("seeding product %q: %w", p.Slug, err)
		}
	}

	for i, g := range seedGallery {
		g.CreatedAt = base.Add(time.Duration(len(seedGallery)-i) * time.Minute)
		g.UpdatedAt = g.CreatedAt
		if _, err := queries.CreateGalleryItem(ctx, g); err != nil {
			return fmt.Errorf("seeding gallery item %q: %w", g.Title, err)
		}
	}

	return nil
}
