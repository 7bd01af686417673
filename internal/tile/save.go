// save.go writes encoded tiles to disk and names them.

package tile

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tools.zach/dev/tilegen/internal/atomicfile"
)

const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// IOError reports a filesystem failure while saving a tile.
type IOError struct {
	// Op is the step that failed: "mkdir" or "write".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Save creates dir if needed and atomically writes img as PNG to dir/name,
// returning the written path. The image is encoded before anything touches
// the disk; filesystem failures are returned as [*IOError].
func Save(dir, name string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return "", &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	path := filepath.Join(dir, name)
	err := atomicfile.WriteFrom(path, FilePerm, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
	if err != nil {
		return "", &IOError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}

// DefaultNameTemplate mirrors the tile naming the map generator expects.
const DefaultNameTemplate = "tile_{hex}.png"

// FileName expands a name template. {hex} becomes input without its leading
// "#" (as typed, not normalized) and {size} becomes the edge length.
func FileName(template, input string, size int) string {
	r := strings.NewReplacer(
		"{hex}", strings.TrimPrefix(input, "#"),
		"{size}", strconv.Itoa(size),
	)
	return r.Replace(template)
}
