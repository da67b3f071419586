// Package chart composes classified attribute relations into a fixed-size
// raster chart: subject header, attack panel, defend panel, and legend on a
// 1200x1600 canvas.
package chart

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// fontPaths lists candidate font files in probe order, grouped by operating
// system convention. The first path that exists and parses wins. CJK-capable
// fonts come first since attribute names may contain CJK glyphs.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/Library/Fonts/Arial Unicode.ttf",

	// Linux
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",

	// Windows
	"C:/Windows/Fonts/msyh.ttc",
	"C:/Windows/Fonts/simsun.ttc",
	"C:/Windows/Fonts/arial.ttf",
}

// findfontNames are filename patterns handed to the system font search when
// none of the explicit paths resolve.
var findfontNames = []string{
	"wqy-zenhei.ttc",
	"wqy-microhei.ttc",
	"DejaVuSans.ttf",
	"Arial.ttf",
}

// Face pairs a font face with its nominal size and whether it came from a
// real font file. Loaded=false means the built-in bitmap fallback, whose
// metrics are unreliable; measurement then switches to the fixed-width
// approximation.
type Face struct {
	font.Face
	Size   float64
	Loaded bool
}

// glyphApproxFactor approximates glyph advance as a fraction of the font
// size when no real font backend is available.
const glyphApproxFactor = 0.56

// FontSet holds the four size tiers used by the chart. Each tier is resolved
// through the same probe independently, so tiers may legitimately fall back
// independently.
type FontSet struct {
	Large  Face // subject name
	Medium Face // panel titles, legend title
	Small  Face // category labels, legend entries
	Tiny   Face // item names
}

// LoadFonts probes the font candidates once per tier and returns the set.
// It never fails: tiers that cannot load any candidate use the built-in face.
func LoadFonts(logger *log.Logger) *FontSet {
	if logger == nil {
		logger = log.Default()
	}
	return &FontSet{
		Large:  loadFace(32, logger),
		Medium: loadFace(26, logger),
		Small:  loadFace(20, logger),
		Tiny:   loadFace(16, logger),
	}
}

func loadFace(size float64, logger *log.Logger) Face {
	for _, path := range fontPaths {
		if face, ok := parseFontFile(path, size); ok {
			logger.Debug("loaded font", "path", path, "size", size)
			return face
		}
	}
	for _, name := range findfontNames {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		if face, ok := parseFontFile(path, size); ok {
			logger.Debug("loaded font via search", "path", path, "size", size)
			return face
		}
	}
	logger.Debug("no font candidate loaded, using built-in face", "size", size)
	return Face{Face: basicfont.Face7x13, Size: 13, Loaded: false}
}

func parseFontFile(path string, size float64) (Face, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Face{}, false
	}
	ft, err := truetype.Parse(data)
	if err != nil {
		// TTC collections and corrupt files land here; try the next candidate.
		return Face{}, false
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: size})
	return Face{Face: face, Size: size, Loaded: true}, true
}
