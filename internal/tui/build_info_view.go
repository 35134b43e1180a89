// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-ride-keeper/models"
)

// RenderBuildInfo prints the application name and build metadata.
func RenderBuildInfo(version string, info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: ridekeeper\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrDash(version))
	b.WriteString("\n")
	b.WriteString("Build date: ")
	b.WriteString(info.BuildDate())
	b.WriteString("\n")
	b.WriteString("Build commit: ")
	b.WriteString(info.BuildCommit())

	return renderPage("ABOUT", b.String(), "")
}
