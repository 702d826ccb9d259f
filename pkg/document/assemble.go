// Package document assembles paginated raster snapshots into a PDF.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"codeberg.org/go-pdf/fpdf"
	pdfreader "github.com/ledongthuc/pdf"

	"cv-builder/pkg/pagination"
)

const imageName = "cv-preview"

var ErrNoBands = errors.New("document: layout has no bands")

// Meta is written into the PDF info dictionary.
type Meta struct {
	Title   string
	Author  string
	Creator string
}

// Assemble places the whole raster on one page per band, shifted up by the
// band offset, and returns the serialized PDF.
func Assemble(r Raster, layout pagination.Layout, meta Meta) ([]byte, error) {
	if len(r.PNG) == 0 {
		return nil, ErrEmptyRaster
	}
	if len(layout.Bands) == 0 {
		return nil, ErrNoBands
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(r.PNG))
	if pdf.Err() {
		return nil, fmt.Errorf("register image: %w", pdf.Error())
	}

	for _, b := range layout.Bands {
		pdf.AddPage()
		pdf.ImageOptions(imageName, 0, b.Offset, layout.ScaledWidth, layout.ScaledHeight, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName derives the download name from the CV owner's full name:
// every whitespace character becomes an underscore.
func FileName(fullName string) string {
	base := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, fullName)
	// An empty name yields "CV.pdf" rather than "_CV.pdf".
	if base == "" {
		return "CV.pdf"
	}
	return base + "_CV.pdf"
}

// PageCount parses a PDF and returns its number of pages.
func PageCount(data []byte) (int, error) {
	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return r.NumPage(), nil
}
