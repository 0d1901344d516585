package render

import (
	"context"
	"testing"

	"github.com/matzehuels/orgmap/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestToPNG(t *testing.T) {
	ctx := context.Background()
	if !Available() {
		_, err := ToPNG(ctx, []byte(tinySVG), 1)
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("ToPNG without rsvg-convert = %v, want UNSUPPORTED", err)
		}
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(ctx, []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Error("output is not a PDF")
	}
}
