// Package web embeds the static landing assets served under /static/.
package web

import "embed"

//go:embed static
var Assets embed.FS
