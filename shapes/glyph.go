package shapes

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultAlphaThreshold is the coverage a raster cell must exceed to emit a point.
const DefaultAlphaThreshold = 150

// GlyphRequest describes one text silhouette to sample.
type GlyphRequest struct {
	Text      string
	W, H      int     // raster size in pixels
	Step      int     // grid stride
	FontScale float64 // font size as a fraction of raster height

	// RasterScale shrinks the raster before drawing; sampled coordinates are
	// divided by it so the silhouette keeps its nominal size. Zero means 1.
	RasterScale float64
	// MinStep floors the grid stride.
	MinStep int
	// Threshold overrides DefaultAlphaThreshold when non-zero.
	Threshold uint8
}

// GlyphSampler rasterises text with Go Bold and samples its covered cells.
// Faces are cached per pixel size. Safe for concurrent use; drawing is
// serialised.
type GlyphSampler struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewGlyphSampler parses the embedded bold font.
func NewGlyphSampler() (*GlyphSampler, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	return &GlyphSampler{font: f, faces: make(map[int]font.Face)}, nil
}

// Sample draws req.Text centred in the raster and returns one point per grid
// cell whose alpha exceeds the threshold. Empty text, a degenerate raster or a
// non-positive stride yield an empty slice and no error.
func (s *GlyphSampler) Sample(req GlyphRequest) ([]Point, error) {
	scale := req.RasterScale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Floor(float64(req.W) * scale))
	h := int(math.Floor(float64(req.H) * scale))
	step := req.Step
	if req.MinStep > step {
		step = req.MinStep
	}
	if req.Text == "" || w <= 0 || h <= 0 || step <= 0 {
		return []Point{}, nil
	}

	size := int(math.Floor(float64(h) * req.FontScale))
	if size <= 0 {
		return []Point{}, nil
	}
	s.mu.Lock()
	face, err := s.face(size)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	img := rasterize(face, req.Text, w, h)
	s.mu.Unlock()

	threshold := req.Threshold
	if threshold == 0 {
		threshold = DefaultAlphaThreshold
	}

	pts := []Point{}
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y += step {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x += step {
			if row[x] > threshold {
				pts = append(pts, Point{
					X: (float64(x) - cx) / scale,
					Y: (cy - float64(y)) / scale,
				})
			}
		}
	}
	return pts, nil
}

// Close releases the cached faces.
func (s *GlyphSampler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for size, f := range s.faces {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing face %dpx: %w", size, err)
		}
		delete(s.faces, size)
	}
	return nil
}

// face returns the cached face for size. Callers hold s.mu; faces are not
// safe for concurrent drawing.
func (s *GlyphSampler) face(size int) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %dpx face: %w", size, err)
	}
	s.faces[size] = f
	return f, nil
}

// rasterize draws text horizontally and vertically centred; anything past
// the raster edge is clipped.
func rasterize(face font.Face, text string, w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
	}
	advance := d.MeasureString(text)
	m := face.Metrics()
	// Middle baseline: centre of the ascent/descent box sits on h/2
	baseline := fixed.I(h)/2 + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{
		X: (fixed.I(w) - advance) / 2,
		Y: baseline,
	}
	d.DrawString(text)
	return img
}
