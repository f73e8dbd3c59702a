// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves visitor IPs to ISO country codes with a MaxMind
// GeoLite2-Country database. Without a database it only recognises local
// addresses.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// LocalCountry is returned for private and loopback addresses.
const LocalCountry = "LOCAL"

var privateNets = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"100.64.0.0/10", // carrier-grade NAT
	"fc00::/7",
	"fe80::/10",
)

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, n, err := net.ParseCIDR(b)
		if err != nil {
			panic(err)
		}
		out = append(out, n)
	}
	return out
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Resolver looks up countries. The zero value is usable and disabled.
type Resolver struct {
	mu      sync.RWMutex
	path    string
	db      *maxminddb.Reader
	modTime time.Time
}

// Open loads the database at path. An empty path yields a disabled resolver.
func Open(path string) (*Resolver, error) {
	r := &Resolver{path: path}
	if path == "" {
		return r, nil
	}
	if _, err := r.Reload(); err != nil {
		return r, err
	}
	return r, nil
}

// Reload reopens the database when the file changed since the last load.
// It reports whether a new database was loaded.
func (r *Resolver) Reload() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		return false, nil
	}
	info, err := os.Stat(r.path)
	if err != nil {
		return false, fmt.Errorf("geoip database: %w", err)
	}
	if r.db != nil && info.ModTime().Equal(r.modTime) {
		return false, nil
	}

	db, err := maxminddb.Open(r.path)
	if err != nil {
		return false, fmt.Errorf("opening geoip database: %w", err)
	}
	if r.db != nil {
		_ = r.db.Close()
	}
	r.db = db
	r.modTime = info.ModTime()
	return true, nil
}

// Enabled reports whether a database is loaded.
func (r *Resolver) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db != nil
}

// Country returns the ISO code for ip, LocalCountry for private addresses,
// or "" when unknown.
func (r *Resolver) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || isPrivate(parsed) {
		return LocalCountry
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return ""
	}
	var rec countryRecord
	if err := r.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// Close releases the database.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func isPrivate(ip net.IP) bool {
	for _, n := range privateNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

var countryNames = map[string]string{
	LocalCountry: "Jaringan Lokal",
	"ID":         "Indonesia",
	"MY":         "Malaysia",
	"SG":         "Singapura",
	"TH":         "Thailand",
	"PH":         "Filipina",
	"VN":         "Vietnam",
	"BN":         "Brunei",
	"TL":         "Timor Leste",
	"AU":         "Australia",
	"CN":         "Tiongkok",
	"JP":         "Jepang",
	"KR":         "Korea Selatan",
	"IN":         "India",
	"US":         "Amerika Serikat",
}

// CountryName returns a display name for code, falling back to the code itself.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	if code == "" {
		return "Tidak diketahui"
	}
	return code
}
