package tiger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/fetcher"
	"github.com/sells-group/foodmap/internal/resilience"
)

// Download fetches a tract shapefile ZIP from the Census Bureau and extracts it.
// Returns the path to the extracted .shp file.
func Download(ctx context.Context, url, destDir string) (string, error) {
	log := zap.L().With(
		zap.String("component", "tiger.download"),
		zap.String("url", url),
	)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrap(err, "tiger: create dest dir")
	}

	parts := strings.Split(url, "/")
	zipName := parts[len(parts)-1]
	zipPath := filepath.Join(destDir, zipName)

	// Skip download if ZIP already exists with content.
	if info, err := os.Stat(zipPath); err == nil && info.Size() > 0 {
		log.Debug("zip already exists, skipping download", zap.String("path", zipPath))
	} else {
		log.Info("downloading TIGER tract shapefile")
		policy := downloadPolicy()
		policy.OnRetry = resilience.LogRetry("TIGER download", zap.String("url", url))
		err := resilience.Do(ctx, policy, func(ctx context.Context) error {
			return downloadFile(ctx, url, zipPath)
		})
		if err != nil {
			return "", eris.Wrap(err, "tiger: download shapefile")
		}
	}

	extractDir := filepath.Join(destDir, strings.TrimSuffix(zipName, ".zip"))
	return ExtractShapefile(zipPath, extractDir)
}

// ExtractShapefile extracts a shapefile archive into destDir and returns the
// path of the .shp it contains.
func ExtractShapefile(zipPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrap(err, "tiger: create extract dir")
	}

	files, err := fetcher.ExtractZIP(zipPath, destDir)
	if err != nil {
		return "", eris.Wrap(err, "tiger: extract ZIP")
	}

	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".shp") {
			return f, nil
		}
	}
	return "", eris.Errorf("tiger: no .shp file found in %s", zipPath)
}

// downloadPolicy is replaced in tests.
var downloadPolicy = resilience.DownloadPolicy

// downloadFile downloads a URL to a local file. The file appears only once
// the body has been read completely.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return eris.Wrap(err, "download")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return eris.Wrapf(&resilience.StatusError{URL: url, StatusCode: resp.StatusCode},
			"download returned status %d", resp.StatusCode)
	}

	f, err := renameio.NewPendingFile(dest, renameio.WithPermissions(0o644))
	if err != nil {
		return eris.Wrap(err, "create file")
	}
	defer f.Cleanup() //nolint:errcheck

	if _, err := io.Copy(f, resp.Body); err != nil {
		return eris.Wrap(err, "write file")
	}

	return eris.Wrap(f.CloseAtomicallyReplace(), "replace file")
}
