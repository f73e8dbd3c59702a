// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// TestimonialItem is a customer quote. Testimonials are static content.
type TestimonialItem struct {
	ID       string
	Name     string
	Role     string
	Company  string
	Content  string
	ImageURL string
}

// TimelineEvent is one milestone on the about page.
type TimelineEvent struct {
	Year        string
	Title       string
	Description string
	ImageURL    string
	Alt         string
}

// Statistic is a headline number on the home page.
type Statistic struct {
	Value string
	Label string
}

// Feature is a selling point on the home page.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// ContactInfo is the company contact block shown in the footer and contact page.
type ContactInfo struct {
	Company string
	Address string
	Phone   string
	Email   string
	MapURL  string
}

var Testimonials = []TestimonialItem{
	{
		ID:      "1",
		Name:    "Budi Santoso",
		Role:    "Kepala Pemadam Kebakaran",
		Company: "Dinas Pemadam Kebakaran Kalimantan Tengah",
		Content: "Peralatan ATSAKA telah secara signifikan meningkatkan kemampuan respons kami. " +
			"Pompa ATSAKA dapat diandalkan bahkan dalam kondisi paling menantang yang kami hadapi dalam kebakaran lahan gambut.",
		ImageURL: "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg",
	},
	{
		ID:      "2",
		Name:    "Siti Rahayu",
		Role:    "Direktur",
		Company: "Badan Nasional Penanggulangan Bencana",
		Content: "Kualitas dan daya tahan produk ATSAKA telah melampaui ekspektasi kami. " +
			"Peralatan mereka sangat penting dalam strategi pencegahan dan pengelolaan kebakaran kami.",
		ImageURL: "https://images.pexels.com/photos/3760819/pexels-photo-3760819.jpeg",
	},
	{
		ID:      "3",
		Name:    "Ahmad Faisal",
		Role:    "Manajer Operasional",
		Company: "Inisiatif Kehutanan Berkelanjutan",
		Content: "Kami telah melengkapi semua tim perlindungan hutan kami dengan peralatan ATSAKA. " +
			"Desain yang ringan dikombinasikan dengan kinerja yang kuat membuat perbedaan nyata dalam intervensi kebakaran dini.",
		ImageURL: "https://images.pexels.com/photos/2182970/pexels-photo-2182970.jpeg",
	},
}

var Timeline = []TimelineEvent{
	{
		Year:        "2010",
		Title:       "Pendirian ATSAKA",
		Description: "ATSAKA didirikan sebagai divisi khusus PT. Sinar Surya Semestaraya untuk menjawab tantangan kebakaran hutan di Indonesia.",
		ImageURL:    "https://images.pexels.com/photos/3856487/pexels-photo-3856487.jpeg",
		Alt:         "Tim pendiri ATSAKA",
	},
	{
		Year:        "2014",
		Title:       "Kontrak Besar Pertama",
		Description: "Meraih kontrak signifikan pertama dengan Badan Nasional Penanggulangan Bencana (BNPB).",
		ImageURL:    "https://images.pexels.com/photos/2661279/pexels-photo-2661279.jpeg",
		Alt:         "Kerjasama dengan BNPB",
	},
	{
		Year:        "2018",
		Title:       "Ekspansi Fasilitas",
		Description: "Memperluas fasilitas manufaktur dan meluncurkan lini produk pompa pemadam inovatif.",
		ImageURL:    "https://images.pexels.com/photos/2760243/pexels-photo-2760243.jpeg",
		Alt:         "Perluasan pabrik ATSAKA",
	},
	{
		Year:        "2023",
		Title:       "Ekspansi Internasional",
		Description: "Memperluas operasi ke pasar regional termasuk Malaysia, Thailand, dan Vietnam.",
		ImageURL:    "https://images.pexels.com/photos/5668473/pexels-photo-5668473.jpeg",
		Alt:         "Ekspansi ATSAKA ke Asia Tenggara",
	},
	{
		Year:        "2025",
		Title:       "15 Tahun Melayani",
		Description: "Merayakan 15 tahun dedikasi dalam inovasi dan pelayanan untuk penanggulangan kebakaran hutan.",
		ImageURL:    "https://images.pexels.com/photos/3807319/pexels-photo-3807319.jpeg",
		Alt:         "Perayaan 15 tahun ATSAKA",
	},
}

var Statistics = []Statistic{
	{Value: "3.500+", Label: "Intervensi Kebakaran Berhasil"},
	{Value: "450+", Label: "Dinas Pemadam Kebakaran Dilengkapi"},
	{Value: "28", Label: "Provinsi Tercakup"},
	{Value: "15", Label: "Tahun Pengalaman"},
}

var Features = []Feature{
	{
		Icon:        "shield",
		Title:       "Material produksi berkualitas tinggi",
		Description: "Semua produk ATSAKA dirancang dengan standar tertinggi, memastikan keandalan dan kinerja di lingkungan yang paling menuntut.",
	},
	{
		Icon:        "flame",
		Title:       "Menggunakan sistem penarikan 3 bilah putar",
		Description: "Peralatan kami dirancang khusus untuk memadamkan kebakaran hutan, dengan konstruksi ringan namun tahan lama yang ideal untuk operasi jarak jauh.",
	},
	{
		Icon:        "award",
		Title:       "Dilengkapi dengan sertifikat SNI",
		Description: "Dibuat di Indonesia dan disesuaikan dengan kondisi hutan Asia Tenggara.",
	},
	{
		Icon:        "leaf",
		Title:       "Garansi produk dan ketersediaan suku cadang",
		Description: "Setiap produk didukung garansi resmi dan ketersediaan suku cadang.",
	},
}

var Contact = ContactInfo{
	Company: "ATSAKA - PT. Sinar Surya Semestaraya",
	Address: "Jl Raya Condet No 6, Balekambang, Kramat Jati, Kota Adm. Jakarta Timur, DKI Jakarta 13530",
	Phone:   "+62 8176454312",
	Email:   "sales@kliksinarsurya.com",
	MapURL:  "https://www.google.com/maps?q=Jl+Raya+Condet+No+6+Jakarta+Timur&output=embed",
}
