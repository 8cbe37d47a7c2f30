package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.White)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestResizeKeepsSmallImages(t *testing.T) {
	original := encodePNG(t, 640, 480)
	resized, err := Resize(original, DefaultMaxDimension)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !bytes.Equal(resized, original) {
		t.Error("image within bounds was re-encoded")
	}
}

func TestResizeCapsLargestDimension(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{name: "wide", w: 2048, h: 512, wantW: 1024, wantH: 256},
		{name: "tall", w: 500, h: 4096, wantW: 125, wantH: 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resized, err := Resize(encodePNG(t, tt.w, tt.h), DefaultMaxDimension)
			if err != nil {
				t.Fatalf("Resize: %v", err)
			}
			w, h := decodeSize(t, resized)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("resized to %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeRejectsGarbage(t *testing.T) {
	if _, err := Resize([]byte("not an image"), DefaultMaxDimension); err == nil {
		t.Error("Resize of garbage succeeded, want error")
	}
}

func TestToPNGPassesThroughPNG(t *testing.T) {
	original := encodePNG(t, 10, 10)
	converted, err := ToPNG(original, "image/png")
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.Equal(converted, original) {
		t.Error("PNG input was re-encoded")
	}
}

func TestToPNGConvertsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}

	converted, err := ToPNG(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(converted)); err != nil {
		t.Errorf("result is not a PNG: %v", err)
	}
}

func TestIsHEIC(t *testing.T) {
	heicHeader := append([]byte{0, 0, 0, 24}, []byte("ftypheic")...)
	heicHeader = append(heicHeader, make([]byte, 8)...)
	if !isHEIC(heicHeader) {
		t.Error("isHEIC missed a heic ftyp box")
	}
	if isHEIC(encodePNG(t, 4, 4)) {
		t.Error("isHEIC matched a PNG")
	}
}
