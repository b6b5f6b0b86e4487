// Package app provides the application service layer.
//
// Wraps the analyzer with a result cache and an analysis history. Sits between
// HTTP handlers and the storage adapters and depends on domain interfaces, not
// concrete implementations.
package app
