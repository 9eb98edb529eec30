// Package templates embeds the files shipped with the installer.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.toml
var files embed.FS

// Read returns the embedded file at name.
func Read(name string) ([]byte, error) {
	return fs.ReadFile(files, name)
}
