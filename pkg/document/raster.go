package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

var ErrEmptyRaster = errors.New("document: empty raster image")

// Raster is a captured PNG snapshot of the rendered preview together with
// its pixel dimensions.
type Raster struct {
	PNG    []byte
	Width  int
	Height int
}

// NewRaster reads the pixel size from the PNG header.
func NewRaster(pngData []byte) (Raster, error) {
	if len(pngData) == 0 {
		return Raster{}, ErrEmptyRaster
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return Raster{}, fmt.Errorf("decode png header: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return Raster{}, ErrEmptyRaster
	}
	return Raster{PNG: pngData, Width: cfg.Width, Height: cfg.Height}, nil
}

// EncodeRaster turns an in-memory image into a Raster.
func EncodeRaster(img image.Image) (Raster, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Raster{}, fmt.Errorf("encode png: %w", err)
	}
	return NewRaster(buf.Bytes())
}
