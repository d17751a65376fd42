package handlers

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"strings"
)

const imageSize = 240

// ImageHandler draws a flat placeholder picture for every catalog item at
// /images/{slug}.png
type ImageHandler struct {
	catalog Catalog
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(catalog Catalog) *ImageHandler {
	return &ImageHandler{catalog: catalog}
}

// ServeHTTP handles the GET /images/{slug}.png request
func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/images/")
	slug, ok := strings.CutSuffix(name, ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, found := h.catalog.Find(slug); !found {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, swatch(slug)); err != nil {
		log.Printf("Error encoding image %s: %v", slug, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(buf.Bytes())
}

// swatch fills a square with a colour derived from the slug, with a darker band
// along the bottom
func swatch(slug string) image.Image {
	h := fnv.New32a()
	h.Write([]byte(slug))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
	band := color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, imageSize, imageSize))
	for y := 0; y < imageSize; y++ {
		c := fill
		if y > imageSize*3/4 {
			c = band
		}
		for x := 0; x < imageSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
