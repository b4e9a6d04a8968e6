// Package staticfiles embeds the board UI shell so the server ships as a
// single binary. Set BUBBLEBOARD_DEV_STATIC=1 to serve from disk instead
// while iterating on the front end.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed index.html css js
var content embed.FS

func EmbeddedFS() fs.FS {
	return content
}
