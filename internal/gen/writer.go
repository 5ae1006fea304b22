package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// unformattedExt is appended to the name of a file gofmt rejected. The
// sidecar has no .go extension, so it is not compiled with the package.
const unformattedExt = ".unformatted"

// WriteFiles writes every generated file next to its record and removes
// the sidecar an earlier failed run may have left.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if err := writeFile(file.Dir, file.Filename, file.Content); err != nil {
			return err
		}

		err := os.Remove(file.Path() + unformattedExt)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale %s%s: %w", file.Filename, unformattedExt, err)
		}
	}

	return nil
}

// writeDebugUnformatted stores code that failed to format next to the
// intended output. Nothing is written without a destination.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	return writeFile(dir, filename+unformattedExt, content)
}

func writeFile(dir, name string, content []byte) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), content, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", name, err)
	}

	return nil
}
