// Package web embeds the order form and its static assets.
package web

import (
	"embed"
	"io/fs"
)

// Form is the order registration page served at the site root.
//
//go:embed index.html
var Form []byte

//go:embed static
var static embed.FS

// Static returns the files served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
