package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/vox2obj/internal/mesher"
	"github.com/Faultbox/vox2obj/pkg/encoding"
	"github.com/Faultbox/vox2obj/pkg/formats"
)

// MTLPath returns the material library path that accompanies an OBJ path.
// Compression extensions are not carried over.
func MTLPath(objPath string) string {
	base := TrimCompression(objPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".mtl"
}

// SaveOBJ writes g to path, compressed according to its extension. When
// palette is non-nil an uncompressed MTL file is written next to it.
// It returns every path written.
func SaveOBJ(path string, g mesher.Group, palette *formats.VOXPalette) ([]string, error) {
	base := filepath.Base(TrimCompression(path))
	opts := OBJOptions{
		Object: encoding.SanitizeIdentifier(strings.TrimSuffix(base, filepath.Ext(base))),
	}

	var written []string
	if palette != nil {
		mtlPath := MTLPath(path)
		if err := saveMTL(mtlPath, g, palette); err != nil {
			return nil, err
		}
		opts.MaterialLib = filepath.Base(mtlPath)
		written = append(written, mtlPath)
	}

	w, err := Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteOBJ(w, g, opts); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}

	return append(written, path), nil
}

func saveMTL(path string, g mesher.Group, palette *formats.VOXPalette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteMTL(f, g, palette); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
