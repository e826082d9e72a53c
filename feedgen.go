// Package feedgen converts arbitrary web pages into normalized RSS feeds.
// It extracts article-like items from unstructured HTML through a cascade
// of heuristic strategies, resolves relative links through per-site
// normalizer strategies, and decodes Google News redirect links through a
// pluggable, cache-backed decoder.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, redis/, sqlite/).
package feedgen
