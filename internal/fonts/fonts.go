package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
// First that exists is typically used when scanning.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. Only .ttf and .otf are included.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// FirstFont returns the full path of a font for overlay text, scanning
// BaseDirs in order. When a directory holds several fonts, one whose name
// contains "regular" wins; otherwise the first in walk order. Returns
// os.ErrNotExist when no font ships with the viewer (callers fall back to
// the raylib default font).
func FirstFont() (string, error) {
	for _, base := range BaseDirs() {
		list, err := ScanDir(base)
		if err != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(strings.ToLower(rel), "regular") {
				return base + "/" + rel, nil
			}
		}
		return base + "/" + list[0], nil
	}
	return "", os.ErrNotExist
}
