package content

import (
	"os"
	"path/filepath"
	"strings"
)

// File is one quiz document found under the content root.
type File struct {
	Path      string
	ClassName string
}

// ClassName converts a class directory name into its display form:
// underscores to spaces, uppercased ("cis_53" -> "CIS 53").
func ClassName(dir string) string {
	return strings.ToUpper(strings.ReplaceAll(dir, "_", " "))
}

// Walk lists quiz documents exactly two levels under root: class directories
// containing .yml/.yaml files. Non-directories at the root and other file
// types inside class directories are ignored. A failure to read the root
// itself is fatal; an unreadable class directory is reported via the returned
// error as well, since the layout is expected to be fully traversable.
func Walk(root string) ([]File, error) {
	classDirs, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, classDir := range classDirs {
		if !classDir.IsDir() {
			continue
		}

		entries, err := os.ReadDir(filepath.Join(root, classDir.Name()))
		if err != nil {
			return nil, err
		}

		className := ClassName(classDir.Name())
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
				continue
			}
			files = append(files, File{
				Path:      filepath.Join(root, classDir.Name(), name),
				ClassName: className,
			})
		}
	}
	return files, nil
}
