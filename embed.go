// Package root uses the embed package to include the console pages.
package root

import "embed"

// Assets is a virtual filesystem containing the page templates and static
// files embedded from the assets directory.
//
//go:embed all:assets
var Assets embed.FS
