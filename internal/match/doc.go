// Package match finds the closest known name for a misspelled one.
//
// Names are compared after normalization (case folded, separators removed),
// so "published_at", "publishedAt" and "PublishedAt" are the same name.
package match
