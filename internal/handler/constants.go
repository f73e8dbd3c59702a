// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot      = "/"
	RouteSuffixNew = "/new"
	RouteParamID   = "/{id}"
	RouteParamSlug = "/{slug}"

	RouteProducts = "/products"
	RouteAbout    = "/about"
	RouteGallery  = "/gallery"
	RouteContact  = "/contact"
	RouteTheme    = "/theme/toggle"
	RouteStorage  = "/storage/v1/object/public/{bucket}/*"

	RouteAdmin      = "/admin"
	RouteLogin      = "/login"
	RouteLogout     = "/logout"
	RouteCategories = "/categories"
	RouteMessages   = "/messages"
)

// Redirect targets.
const (
	redirectAdmin           = "/admin"
	redirectLogin           = "/admin/login"
	redirectAdminProducts   = "/admin/products"
	redirectAdminCategories = "/admin/categories"
	redirectAdminGallery    = "/admin/gallery"
	redirectAdminMessages   = "/admin/messages"
	redirectContact         = "/contact"
)

// Template names.
const (
	tmplHome        = "public/home"
	tmplProducts    = "public/products"
	tmplProduct     = "public/product"
	tmplAbout       = "public/about"
	tmplGallery     = "public/gallery"
	tmplContact     = "public/contact"
	tmplLogin       = "auth/login"
	tmplDashboard   = "admin/dashboard"
	tmplAdminProds  = "admin/products"
	tmplProductForm = "admin/product_form"
	tmplCategories  = "admin/categories"
	tmplCategoryFrm = "admin/category_form"
	tmplAdminGall   = "admin/gallery"
	tmplGalleryForm = "admin/gallery_form"
	tmplMessages    = "admin/messages"
	tmplNotFound    = "errors/404"
	tmplServerError = "errors/500"
	tmplUnavailable = "errors/unavailable"
)

// User-facing messages.
const (
	msgSaveProductFailed  = "Gagal menyimpan produk. Silakan coba lagi."
	msgSaveCategoryFailed = "Gagal menyimpan kategori. Silakan coba lagi."
	msgSaveGalleryFailed  = "Gagal menyimpan item galeri. Silakan coba lagi."
	msgDeleteFailed       = "Gagal menghapus data. Silakan coba lagi."
	msgInvalidForm        = "Data formulir tidak valid."
	msgUploadTooLarge     = "Total ukuran unggahan terlalu besar. Maksimal 50MB per penyimpanan."
)

// adminPerPage is the admin list page size.
const adminPerPage = 20

// maxUploadMemory bounds multipart parsing held in memory; the rest spills to disk.
const maxUploadMemory = 32 << 20

// Request body caps. Admin forms carry image batches of up to 5MB per file.
const (
	maxUploadBody = 50 << 20
	maxFormBody   = 1 << 20
)
