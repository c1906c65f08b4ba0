package render

import (
	"image"
	"image/png"

	"github.com/google/renameio/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// SavePNG encodes img to path, replacing any existing file atomically.
func SavePNG(path string, img image.Image) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			zap.L().Debug("render: cleanup pending file", zap.String("path", path), zap.Error(err))
		}
	}()

	if err := png.Encode(pending, img); err != nil {
		return eris.Wrapf(err, "render: encode %s", path)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return eris.Wrapf(err, "render: replace %s", path)
	}
	return nil
}
