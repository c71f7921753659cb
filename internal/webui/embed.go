package webui

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/alex65536/fenview/internal/util/mergefs"
)

//go:embed static
var ourStaticData embed.FS

//go:embed template
var templates embed.FS

// staticFS returns the embedded assets, overlaid with the files from dir if it is not empty.
func staticFS(dir string) (fs.FS, error) {
	our, err := fs.Sub(ourStaticData, "static")
	if err != nil {
		panic(err)
	}
	if dir == "" {
		return our, nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("static dir: %q is not a directory", dir)
	}
	return mergefs.New(os.DirFS(dir), our), nil
}
