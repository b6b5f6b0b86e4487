// Package domain defines the analysis record and the storage contracts of the
// analysis service. No implementation code, just contracts.
package domain
