package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rotisserie/eris"
)

// MaxEntrySize caps the uncompressed size of a single archive member. The
// largest TIGER tract shapefile (Texas) is well under this.
const MaxEntrySize = 1 << 30

// ExtractZIP unpacks every file in the archive under destDir and returns
// the written paths in archive order. Each member is written to a pending
// file and renamed into place, so a failed extraction never leaves a
// truncated .shp or .dbf behind.
func ExtractZIP(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var extracted []string
	for _, f := range r.File {
		path, err := extractZIPEntry(f, destDir)
		if err != nil {
			return extracted, err
		}
		if path != "" {
			extracted = append(extracted, path)
		}
	}

	return extracted, nil
}

func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	destPath, err := entryPath(destDir, f.Name)
	if err != nil {
		return "", err
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return "", eris.Wrap(err, "zip: create directory")
		}
		return "", nil
	}
	if f.UncompressedSize64 > MaxEntrySize {
		return "", eris.Errorf("zip: entry %q is %d bytes, limit %d", f.Name, f.UncompressedSize64, MaxEntrySize)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := renameio.NewPendingFile(destPath, renameio.WithPermissions(0o644))
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Cleanup() //nolint:errcheck

	n, err := io.Copy(out, io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return "", eris.Wrapf(err, "zip: write %s", f.Name)
	}
	if n > MaxEntrySize {
		return "", eris.Errorf("zip: entry %q exceeds %d bytes", f.Name, MaxEntrySize)
	}
	if err := out.CloseAtomicallyReplace(); err != nil {
		return "", eris.Wrapf(err, "zip: replace %s", destPath)
	}

	return destPath, nil
}

// entryPath resolves an archive member name under destDir, rejecting names
// that would escape it.
func entryPath(destDir, name string) (string, error) {
	destPath := filepath.Join(destDir, name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q (zip slip attempt)", name)
	}
	return destPath, nil
}
