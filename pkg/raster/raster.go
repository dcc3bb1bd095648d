// Package raster renders documents into page images so overlays have pixel
// dimensions to scale against. Images are decoded in-process; PDFs are
// rasterized with pdftoppm.
package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// PageImage is one rendered page.
type PageImage struct {
	Index  int
	Width  int
	Height int
	PNG    []byte
}

// maxPages caps PDF rasterization; Document AI online processing is itself
// limited to 15 pages.
const maxPages = 10

// IsPDF sniffs whether the document is a PDF, by MIME type or magic bytes.
func IsPDF(data []byte, mimeType string) bool {
	if strings.EqualFold(mimeType, "application/pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// RenderPages converts a document to an ordered sequence of page images.
func RenderPages(data []byte, mimeType string) ([]PageImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("document data is empty")
	}
	if IsPDF(data, mimeType) {
		return renderPDF(data)
	}
	return renderImage(data)
}

func renderImage(data []byte) ([]PageImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page image: %w", err)
	}

	bounds := img.Bounds()
	return []PageImage{{
		Index:  0,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		PNG:    buf.Bytes(),
	}}, nil
}

func renderPDF(data []byte) ([]PageImage, error) {
	pages, err := runPdftoppm(data, 150, maxPages)
	if err != nil {
		slog.Warn("PDF rasterization failed, retrying at lower resolution", "err", err)
		pages, err = runPdftoppm(data, 100, 5)
		if err != nil {
			return nil, fmt.Errorf("PDF rasterization failed: %w", err)
		}
	}
	return pages, nil
}

func runPdftoppm(data []byte, dpi, lastPage int) ([]PageImage, error) {
	tempDir, err := os.MkdirTemp("", "docai-raster-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF: %w", err)
	}

	prefix := filepath.Join(tempDir, "page")
	cmd := exec.Command("pdftoppm", "-png",
		"-r", fmt.Sprintf("%d", dpi),
		"-f", "1",
		"-l", fmt.Sprintf("%d", lastPage),
		pdfPath, prefix)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)

	pages := make([]PageImage, 0, len(matches))
	for i, path := range matches {
		pngBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rendered page: %w", err)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(pngBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to decode rendered page: %w", err)
		}
		pages = append(pages, PageImage{
			Index:  i,
			Width:  cfg.Width,
			Height: cfg.Height,
			PNG:    pngBytes,
		})
	}
	return pages, nil
}
