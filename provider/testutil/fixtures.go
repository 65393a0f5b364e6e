package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"grokmcp/model"
)

// TestUsage returns the usage counters used across fixtures
func TestUsage() model.Usage {
	return model.Usage{PromptTokens: 8, CompletionTokens: 4, TotalTokens: 12}
}

// TestModelList returns a small model catalogue
func TestModelList() *model.ModelList {
	return &model.ModelList{Models: []model.ModelInfo{
		{ID: "grok-2-image-1212", OwnedBy: "xai", Created: "2024-12-12"},
		{ID: "grok-4", OwnedBy: "xai", Created: "2025-07-09"},
		{ID: "grok-4-fast", OwnedBy: "xai", Created: "2025-09-19"},
	}}
}

// TestImageResult returns n URL images with a revised prompt
func TestImageResult(n int) *model.ImageResult {
	if n == 0 {
		n = 1
	}
	result := &model.ImageResult{RevisedPrompt: "A glossy red cube on a white background"}
	for i := 0; i < n; i++ {
		result.Images = append(result.Images, model.GeneratedImage{
			URL:           "https://imgen.test/" + string(rune('a'+i)) + ".jpg",
			RevisedPrompt: result.RevisedPrompt,
		})
	}
	return result
}

// WritePNG writes a valid 2x2 PNG into dir and returns its path
func WritePNG(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage()); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return writeFile(t, dir, name, buf.Bytes())
}

// WriteJPEG writes a valid 2x2 JPEG into dir and returns its path
func WriteJPEG(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return writeFile(t, dir, name, buf.Bytes())
}

// WriteFile writes arbitrary bytes, for attachments that must be rejected
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	return writeFile(t, dir, name, data)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func solidImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	return img
}
