package content

import (
	"embed"
	"io/fs"
)

//go:embed pack
var packFS embed.FS

// Default returns the built-in story pack.
func Default() fs.FS {
	sub, err := fs.Sub(packFS, "pack")
	if err != nil {
		panic(err)
	}
	return sub
}
