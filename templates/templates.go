// Package templates embeds the HTML templates and static assets of the catalog.
package templates

import "embed"

//go:embed *.html
var FS embed.FS

//go:embed static
var Static embed.FS
