package chart

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vmoranv/aolachart/pkg/attr"
)

// Canvas dimensions. The output is always exactly this size regardless of
// how many relations the subject has.
const (
	Width  = 1200
	Height = 1600
)

// Layout constants for the three-panel-plus-legend composition.
const (
	headerY      = 30
	headerHeight = 120
	panelGap     = 40
	panelHeight  = 480
	panelMarginX = 40 // header/attack/defend panels span Width-2*panelMarginX

	legendGap     = 30
	legendHeight  = 120
	legendMarginX = 50
	bottomMargin  = 30

	headerIconSize = 70
	itemIconSize   = 60
	colPitch       = 150
	rowPitch       = 70
	itemsPerRow    = 4
	categoryGap    = 20
	swatchSize     = 15
)

var (
	backgroundColor = color.NRGBA{245, 247, 250, 255}
	titleColor      = color.NRGBA{15, 23, 42, 255}
	panelFill       = color.NRGBA{255, 255, 255, 255}
	itemNameColor   = color.NRGBA{31, 41, 55, 255}
	accentColor     = color.NRGBA{99, 102, 241, 255}

	categoryColors = map[attr.Class]color.NRGBA{
		attr.ClassSuper:  {239, 68, 68, 255},
		attr.ClassStrong: {251, 146, 60, 255},
		attr.ClassWeak:   {34, 197, 94, 255},
		attr.ClassImmune: {107, 114, 128, 255},
	}

	categoryLabels = map[attr.Class]string{
		attr.ClassSuper:  "Super effective",
		attr.ClassStrong: "Effective",
		attr.ClassWeak:   "Weak",
		attr.ClassImmune: "Immune",
	}

	legendEntries = []struct {
		class attr.Class
		desc  string
	}{
		{attr.ClassSuper, "3x damage"},
		{attr.ClassStrong, "2x damage"},
		{attr.ClassWeak, "1/2 damage"},
		{attr.ClassImmune, "no damage"},
	}
)

// chartCategories is the category order the chart renders. The normal bucket
// is deliberately excluded from the chart for display density; the text
// report shows it instead.
var chartCategories = []attr.Class{attr.ClassSuper, attr.ClassStrong, attr.ClassWeak, attr.ClassImmune}

// Renderer composes relation charts. Icons resolve through the icon cache
// with failures degrading to label-only items; fonts are loaded once at
// construction.
type Renderer struct {
	icons  *attr.IconCache
	fonts  *FontSet
	logger *log.Logger
}

// NewRenderer creates a chart renderer. A nil logger falls back to
// log.Default().
func NewRenderer(icons *attr.IconCache, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		icons:  icons,
		fonts:  LoadFonts(logger),
		logger: logger,
	}
}

// Render draws the full chart for subject and returns the encoded PNG bytes.
// Icon and decorative failures never abort the render; only PNG encoding can
// fail.
func (r *Renderer) Render(ctx context.Context, subject attr.Attribute, attack, defend attr.BucketSet) ([]byte, error) {
	dc := gg.NewContext(Width, Height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	r.drawHeader(ctx, dc, subject)

	panelW := float64(Width - 2*panelMarginX)
	attackY := float64(headerY + headerHeight + panelGap)
	defendY := attackY + panelHeight + panelGap

	r.drawRelationPanel(ctx, dc, "Attacking", categoryColors[attr.ClassStrong], attack, attackY, panelW)
	r.drawRelationPanel(ctx, dc, "Defending", categoryColors[attr.ClassWeak], defend, defendY, panelW)

	r.drawLegend(dc, defendY+panelHeight+legendGap)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(ctx context.Context, dc *gg.Context, subject attr.Attribute) {
	w := float64(Width - 2*panelMarginX)
	x := float64(panelMarginX)
	drawPanel(dc, x, headerY, w, headerHeight, 20, panelFill, accentColor, 3)

	icon := r.icon(ctx, subject.ID, headerIconSize)
	f := r.fonts.Large

	if icon != nil {
		iconX := int(x) + (int(w)-headerIconSize)/2 - 60
		iconY := headerY + (headerHeight-headerIconSize)/2
		dc.DrawImage(icon, iconX, iconY)
		nameY := float64(iconY) + (headerIconSize-f.Size)/2
		r.drawText(dc, f, subject.Name, float64(iconX+headerIconSize+20), nameY, titleColor)
		return
	}

	nameW := r.measure(dc, f, subject.Name)
	r.drawText(dc, f, subject.Name, x+(w-nameW)/2, headerY+(headerHeight-f.Size)/2, titleColor)
}

func (r *Renderer) drawRelationPanel(ctx context.Context, dc *gg.Context, title string, border color.NRGBA, buckets attr.BucketSet, y, w float64) {
	x := float64(panelMarginX)
	drawPanel(dc, x, y, w, panelHeight, 15, panelFill, border, 2)
	r.drawText(dc, r.fonts.Medium, title, x+20, y+15, border)

	r.drawCategories(ctx, dc, buckets, x+20, y+55, panelHeight-60)
}

// drawCategories walks the chart categories in display order, advancing a
// vertical cursor per category. Once the cursor passes the panel's allotted
// height, remaining categories are silently dropped.
func (r *Renderer) drawCategories(ctx context.Context, dc *gg.Context, buckets attr.BucketSet, x, y, h float64) {
	cursor := y
	for _, class := range chartCategories {
		items := buckets[class]
		if len(items) == 0 {
			continue
		}

		c := categoryColors[class]
		dc.SetColor(c)
		dc.DrawRectangle(x, cursor, swatchSize, swatchSize)
		dc.Fill()
		r.drawText(dc, r.fonts.Small, categoryLabels[class], x+25, cursor-3, c)
		cursor += 25

		r.drawItems(ctx, dc, items, x, cursor)

		rows := (len(items) + itemsPerRow - 1) / itemsPerRow
		cursor += float64(rows)*rowPitch + categoryGap
		if cursor > y+h {
			break
		}
	}
}

func (r *Renderer) drawItems(ctx context.Context, dc *gg.Context, items []attr.Entry, x, y float64) {
	for i, item := range items {
		itemX := int(x) + (i%itemsPerRow)*colPitch
		itemY := int(y) + (i/itemsPerRow)*rowPitch

		if icon := r.icon(ctx, item.ID, itemIconSize); icon != nil {
			dc.DrawImage(icon, itemX, itemY)
		}
		r.drawText(dc, r.fonts.Tiny, item.Name, float64(itemX+itemIconSize+10), float64(itemY+20), itemNameColor)
	}
}

func (r *Renderer) drawLegend(dc *gg.Context, y float64) {
	w := float64(Width - 2*legendMarginX)
	x := float64(legendMarginX)

	// Clamp so the legend never extends past the bottom margin.
	if y+legendHeight > Height-bottomMargin {
		y = Height - legendHeight - bottomMargin
	}

	drawPanel(dc, x, y, w, legendHeight, 12, panelFill, accentColor, 1)
	r.drawText(dc, r.fonts.Medium, "Legend", x+20, y+15, titleColor)

	for i, entry := range legendEntries {
		entryX := x + 20 + float64(i%2)*(w/2-40)
		entryY := y + 45 + float64(i/2)*30
		text := fmt.Sprintf("%s - %s", categoryLabels[entry.class], entry.desc)
		r.drawText(dc, r.fonts.Small, text, entryX+10, entryY, categoryColors[entry.class])
	}
}

// icon fetches and resizes an icon, returning nil when the icon cannot be
// resolved; items then render label-only with no placeholder.
func (r *Renderer) icon(ctx context.Context, id, size int) image.Image {
	if r.icons == nil {
		return nil
	}
	img, err := r.icons.Image(ctx, id)
	if err != nil {
		return nil
	}
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// drawText draws s with its top edge at yTop, approximating PIL-style
// top-left anchoring over gg's baseline anchoring.
func (r *Renderer) drawText(dc *gg.Context, f Face, s string, x, yTop float64, c color.Color) {
	dc.SetFontFace(f.Face)
	dc.SetColor(c)
	dc.DrawString(s, x, yTop+f.Size*0.8)
}

// measure returns the rendered width of s. When the tier fell back to the
// built-in face, the width is approximated as glyph count times a fixed
// per-glyph advance.
func (r *Renderer) measure(dc *gg.Context, f Face, s string) float64 {
	if !f.Loaded {
		return float64(utf8.RuneCountInString(s)) * f.Size * glyphApproxFactor
	}
	dc.SetFontFace(f.Face)
	w, _ := dc.MeasureString(s)
	return w
}
