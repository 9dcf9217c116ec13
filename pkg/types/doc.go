// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the ash pipeline:
// content types, retraction records, report shapes, and configuration.
package types
