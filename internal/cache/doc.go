// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package cache provides a thread-safe in-memory TTL cache for analytics
results.

Every analytics endpoint caches its response per (endpoint, start date, end
date, parameters). GenerateKey hashes the parameters into a compact key:

	key := cache.GenerateKey("analytics/dashboard", struct {
	    Start, End string
	}{"2018-01-01", "2018-01-31"})
	if v, ok := c.Get(key); ok {
	    return v.(*models.Dashboard)
	}

Entries expire lazily on Get and in a background sweep every five minutes.
A manual dataset reload calls Clear, since every cached result was derived
from the table being replaced.

Hits, misses, evictions and the entry count are exported through the
cache_* Prometheus metrics, labelled with the cache name.
*/
package cache
