// Package config provides configuration loading, merging, and validation
// facilities for go-ride-keeper.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The main entry point is [GetStructuredConfig]; [App.ResolveFieldKey] turns
// the key settings into the 32-byte field-encryption key.
package config
