package document

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"cv-builder/pkg/pagination"
)

func testRaster(t *testing.T, w, h int) Raster {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(y % 256), G: 0x80, B: uint8(x % 256), A: 0xff})
		}
	}
	r, err := EncodeRaster(img)
	if err != nil {
		t.Fatalf("EncodeRaster() error = %v", err)
	}
	return r
}

func TestNewRaster(t *testing.T) {
	r := testRaster(t, 40, 120)
	if r.Width != 40 || r.Height != 120 {
		t.Fatalf("raster size = %dx%d, want 40x120", r.Width, r.Height)
	}
	if _, err := NewRaster(nil); !errors.Is(err, ErrEmptyRaster) {
		t.Fatalf("NewRaster(nil) error = %v, want ErrEmptyRaster", err)
	}
	if _, err := NewRaster([]byte("not a png")); err == nil {
		t.Fatalf("NewRaster(garbage) expected error")
	}
}

func TestAssemblePageCount(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		pages int
	}{
		{name: "single page", w: 100, h: 120, pages: 1},
		{name: "three pages", w: 100, h: 300, pages: 3},
		{name: "exact two pages", w: 210, h: 594, pages: 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := testRaster(t, tt.w, tt.h)
			layout, err := pagination.PaginateA4(r.Width, r.Height)
			if err != nil {
				t.Fatalf("PaginateA4() error = %v", err)
			}
			out, err := Assemble(r, layout, Meta{Title: "Jane Q. Public", Creator: "cv-builder"})
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Fatalf("output is not a PDF: %q", out[:8])
			}
			n, err := PageCount(out)
			if err != nil {
				t.Fatalf("PageCount() error = %v", err)
			}
			if n != tt.pages {
				t.Fatalf("PageCount() = %d, want %d", n, tt.pages)
			}
		})
	}
}

func TestAssembleRejectsEmptyInput(t *testing.T) {
	layout, _ := pagination.PaginateA4(10, 10)
	if _, err := Assemble(Raster{}, layout, Meta{}); !errors.Is(err, ErrEmptyRaster) {
		t.Fatalf("Assemble(empty raster) error = %v", err)
	}
	r := testRaster(t, 10, 10)
	if _, err := Assemble(r, pagination.Layout{}, Meta{}); !errors.Is(err, ErrNoBands) {
		t.Fatalf("Assemble(no bands) error = %v", err)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "Jane Q. Public", want: "Jane_Q._Public_CV.pdf"},
		{in: "Samantha Williams", want: "Samantha_Williams_CV.pdf"},
		{in: "A  B\tC", want: "A__B_C_CV.pdf"},
		{in: "", want: "CV.pdf"},
	}
	for _, tt := range tests {
		if got := FileName(tt.in); got != tt.want {
			t.Fatalf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
