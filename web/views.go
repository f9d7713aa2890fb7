package web

import (
	"embed"
	"io/fs"
)

//go:embed views/*.html
var viewsFS embed.FS

// ViewsFS returns the embedded page templates rooted at their directory.
func ViewsFS() fs.FS {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return sub
}
