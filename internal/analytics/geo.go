// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"sort"

	"github.com/tomtom215/marketscope/internal/models"
)

// Map zoom levels for the suggested viewport.
const (
	DefaultZoom = 6
	WorldZoom   = 2
)

type geoKey struct {
	lat, lng    float64
	city, state string
}

// GeoAggregate groups rows that carry a location by the exact
// (lat, lng, city, state) tuple and counts rows per tuple. Rows without a
// location are skipped. Sorted by count descending, then lat, lng, city and
// state ascending.
func GeoAggregate(rows []models.Transaction) []models.GeoPoint {
	counts := make(map[geoKey]int)
	for i := range rows {
		loc := rows[i].Location
		if loc == nil {
			continue
		}
		counts[geoKey{lat: loc.Lat, lng: loc.Lng, city: loc.City, state: loc.State}]++
	}

	out := make([]models.GeoPoint, 0, len(counts))
	for k, c := range counts {
		out = append(out, models.GeoPoint{Lat: k.lat, Lng: k.lng, City: k.city, State: k.state, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Count != b.Count:
			return a.Count > b.Count
		case a.Lat != b.Lat:
			return a.Lat < b.Lat
		case a.Lng != b.Lng:
			return a.Lng < b.Lng
		case a.City != b.City:
			return a.City < b.City
		default:
			return a.State < b.State
		}
	})
	return out
}

// MapView centers the map on the mean coordinate of the unique points.
// Without points it falls back to a world view at (0, 0).
func MapView(points []models.GeoPoint) models.MapView {
	if len(points) == 0 {
		return models.MapView{Zoom: WorldZoom}
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return models.MapView{CenterLat: sumLat / n, CenterLng: sumLng / n, Zoom: DefaultZoom}
}

// Geo returns the map markers for rows together with their viewport.
func Geo(rows []models.Transaction) models.GeoResult {
	points := GeoAggregate(rows)
	return models.GeoResult{Points: points, View: MapView(points)}
}
