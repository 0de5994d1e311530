package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
)

// testPage builds a tiny solid-color image so pages are distinguishable.
func testPage(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestAppendAndPageCount(t *testing.T) {
	store := New()

	for i := 1; i <= 3; i++ {
		count := store.Append("abc", testPage(color.White))
		if count != i {
			t.Errorf("Append %d: expected count %d, got %d", i, i, count)
		}
	}

	count, err := store.PageCount("abc")
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 pages, got %d", count)
	}
}

func TestPagesPreserveCaptureOrder(t *testing.T) {
	store := New()
	colors := []color.Color{
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 255, A: 255},
		color.RGBA{B: 255, A: 255},
	}
	for _, c := range colors {
		store.Append("ordered", testPage(c))
	}

	pages, err := store.Pages("ordered")
	if err != nil {
		t.Fatalf("Pages() error = %v", err)
	}
	if len(pages) != len(colors) {
		t.Fatalf("Expected %d pages, got %d", len(colors), len(pages))
	}
	for i, want := range colors {
		got, err := store.Page("ordered", i)
		if err != nil {
			t.Fatalf("Page(%d) error = %v", i, err)
		}
		wr, wg, wb, _ := want.RGBA()
		gr, gg, gb, _ := got.At(0, 0).RGBA()
		if wr != gr || wg != gg || wb != gb {
			t.Errorf("Page %d has wrong content: expected %v, got %v", i, want, got.At(0, 0))
		}
	}
}

func TestUnknownSession(t *testing.T) {
	store := New()

	if _, err := store.PageCount("unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("PageCount: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Page("unknown", 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Page: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Pages("unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Pages: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.EncodePage("unknown", 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("EncodePage: expected ErrSessionNotFound, got %v", err)
	}
}

func TestPageIndexBounds(t *testing.T) {
	store := New()
	store.Append("abc", testPage(color.White))

	tests := []struct {
		name  string
		index int
	}{
		{"negative index", -1},
		{"index equals count", 1},
		{"index beyond count", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Page("abc", tt.index); !errors.Is(err, ErrPageOutOfRange) {
				t.Errorf("Expected ErrPageOutOfRange, got %v", err)
			}
		})
	}
}

func TestEncodePageProducesJPEG(t *testing.T) {
	store := New()
	store.Append("abc", testPage(color.White))

	data, err := store.EncodePage("abc", 0)
	if err != nil {
		t.Fatalf("EncodePage() error = %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("EncodePage did not produce decodable JPEG: %v", err)
	}

	// Re-encoding happens per read; two reads must both be valid.
	again, err := store.EncodePage("abc", 0)
	if err != nil {
		t.Fatalf("Second EncodePage() error = %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("Expected identical bytes from repeated encodes of an unchanged page")
	}
}

func TestConcurrentAppendsSerialize(t *testing.T) {
	store := New()
	const workers = 16
	const perWorker = 8

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				store.Append("shared", testPage(color.Black))
			}
		}()
	}
	wg.Wait()

	count, err := store.PageCount("shared")
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != workers*perWorker {
		t.Errorf("Expected %d pages after concurrent appends, got %d", workers*perWorker, count)
	}
}
