// Package pagination cuts a raster image, scaled to the page width, into
// page-height bands.
package pagination

import (
	"errors"
	"math"
)

// A4 page format in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// tolerance in page units below which leftover content does not open a page.
const tolerance = 1e-9

var ErrInvalidDimensions = errors.New("pagination: image and page dimensions must be positive")

// Band is one page worth of the scaled image. The whole image is placed on
// every page at Offset, so the band's region lands on the page origin.
type Band struct {
	Index  int
	Offset float64
	Height float64
}

// Layout is the result of Paginate; all lengths are in page units.
type Layout struct {
	PageWidth    float64
	PageHeight   float64
	ScaledWidth  float64
	ScaledHeight float64
	Bands        []Band
}

func (l Layout) Pages() int { return len(l.Bands) }

// TrailingBlank is the empty space left at the bottom of the last page.
func (l Layout) TrailingBlank() float64 {
	if len(l.Bands) == 0 {
		return 0
	}
	return l.PageHeight - l.Bands[len(l.Bands)-1].Height
}

// Paginate maps the image width onto the page width and slices the scaled
// height into pages from the top. The last band may be shorter than a page;
// it is never padded or cropped.
func Paginate(imageWidth, imageHeight int, pageWidth, pageHeight float64) (Layout, error) {
	if imageWidth <= 0 || imageHeight <= 0 || pageWidth <= 0 || pageHeight <= 0 {
		return Layout{}, ErrInvalidDimensions
	}

	ratio := float64(imageHeight) / float64(imageWidth)
	scaledHeight := pageWidth * ratio

	n := int(math.Ceil((scaledHeight - tolerance) / pageHeight))
	if n < 1 {
		n = 1
	}

	bands := make([]Band, n)
	for i := range bands {
		top := float64(i) * pageHeight
		bands[i] = Band{
			Index:  i,
			Offset: -top,
			Height: math.Min(pageHeight, scaledHeight-top),
		}
	}

	return Layout{
		PageWidth:    pageWidth,
		PageHeight:   pageHeight,
		ScaledWidth:  pageWidth,
		ScaledHeight: scaledHeight,
		Bands:        bands,
	}, nil
}

// PaginateA4 is Paginate for the A4 portrait format.
func PaginateA4(imageWidth, imageHeight int) (Layout, error) {
	return Paginate(imageWidth, imageHeight, A4Width, A4Height)
}
