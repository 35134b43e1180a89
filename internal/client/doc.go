// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the ridekeeper command-line application.
//
// It maps sub-commands onto the trip, card and app-info services and renders
// their results with the tui package. Background workers (history pruning)
// are started by long-running commands only.
package client
