// Package frontend holds the web UI served at the root path.
package frontend

import "embed"

//go:embed dist
var StaticFiles embed.FS
