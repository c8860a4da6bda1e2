// Package render draws a shape distribution as a static bubble chart.
//
// Each distinct shape becomes one bubble centred on (width, height). Bubble
// diameter and colour grow with the count, so the dominant resolutions
// stand out. Larger bubbles are drawn first so small ones stay visible.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/imgshape/internal/shape"
)

// Defaults applied to zero Options fields.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultLow    = "#00BFFF"
	DefaultHigh   = "#0000CD"

	// MinSize and MaxSize bound each chart edge.
	MinSize = 160
	MaxSize = 8192
)

const (
	minDiameter    = 10.0
	maxDiameter    = 60.0
	singleDiameter = 50.0
	bubbleAlpha    = 179 // about 70% opaque

	fontScale   = 2
	tickLength  = 4
	targetTicks = 5
	headroom    = 1.1
)

var (
	background = color.NRGBA{255, 255, 255, 255}
	axisColor  = color.NRGBA{0, 0, 0, 255}
	gridColor  = color.NRGBA{229, 236, 246, 255}
)

// ErrEmptyDistribution is returned when there is nothing to draw.
var ErrEmptyDistribution = errors.New("distribution is empty")

// Options controls the chart size and colour ramp.
type Options struct {
	// Width and Height of the chart in pixels. Zero selects the default.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Low and High are hex colours for the least and most frequent shapes.
	// Counts in between are blended in Lab space.
	Low  string `json:"low,omitempty"`
	High string `json:"high,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Low == "" {
		o.Low = DefaultLow
	}
	if o.High == "" {
		o.High = DefaultHigh
	}
	return o
}

// plot maps data coordinates to pixels inside the axes.
type plot struct {
	area          image.Rectangle
	xLimit, xStep int
	yLimit, yStep int
}

func (p plot) project(s shape.Shape) (float64, float64) {
	x := float64(p.area.Min.X) + float64(s.Width)*float64(p.area.Dx())/float64(p.xLimit)
	y := float64(p.area.Max.Y) - float64(s.Height)*float64(p.area.Dy())/float64(p.yLimit)
	return x, y
}

// Chart renders d as a bubble chart.
func Chart(d *shape.Distribution, opts Options) (*image.NRGBA, error) {
	if d == nil || d.Len() == 0 {
		return nil, ErrEmptyDistribution
	}

	opts = opts.withDefaults()
	if opts.Width < MinSize || opts.Height < MinSize {
		return nil, fmt.Errorf("chart size %dx%d is below the minimum %dx%d", opts.Width, opts.Height, MinSize, MinSize)
	}
	if opts.Width > MaxSize || opts.Height > MaxSize {
		return nil, fmt.Errorf("chart size %dx%d exceeds the maximum %dx%d", opts.Width, opts.Height, MaxSize, MaxSize)
	}
	low, err := parseHex(opts.Low)
	if err != nil {
		return nil, fmt.Errorf("invalid low colour %q: %w", opts.Low, err)
	}
	high, err := parseHex(opts.High)
	if err != nil {
		return nil, fmt.Errorf("invalid high colour %q: %w", opts.High, err)
	}

	sum := shape.Summarize(d)
	p := newPlot(opts.Width, opts.Height, sum.MaxWidth, sum.MaxHeight)

	canvas := imaging.New(opts.Width, opts.Height, background)
	drawAxes(canvas, p)

	entries := d.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	minCount, maxCount := entries[len(entries)-1].Count, entries[0].Count

	layer := image.NewRGBA(canvas.Bounds())
	for _, e := range entries {
		t := ramp(e.Count, minCount, maxCount)
		r, g, b := low.BlendLab(high, t).Clamped().RGB255()
		cx, cy := p.project(e.Shape)
		fillCircle(layer, cx, cy, diameter(e.Count, minCount, maxCount)/2, r, g, b, bubbleAlpha)
	}

	return imaging.Clone(blend.Normal(canvas, layer)), nil
}

// parseHex accepts only "#rgb" and "#rrggbb". colorful.Hex does not check
// the length, so "#12345" would otherwise parse.
func parseHex(s string) (colorful.Color, error) {
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("want #rgb or #rrggbb, got %d characters", len(s))
	}
	return colorful.Hex(s)
}

// EncodeChart renders d and writes it to w in the given format.
func EncodeChart(w io.Writer, d *shape.Distribution, format imaging.Format, opts Options) error {
	img, err := Chart(d, opts)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, format); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

// SaveChart renders d into a new file at path. The format follows the file
// extension. An existing file is never overwritten.
//
// # Errors
//
//   - Returns shape.ErrOutputAlreadyExists if path exists
//   - Returns imaging.ErrUnsupportedFormat for an unknown extension
func SaveChart(path string, d *shape.Distribution, opts Options) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("chart file %q: %w", path, err)
	}
	img, err := Chart(d, opts)
	if err != nil {
		return err
	}
	return WriteChart(path, img)
}

// WriteChart writes an already rendered chart to a new file at path, in
// the format given by the extension. An existing file is never overwritten
// and a failed encode leaves no file behind.
func WriteChart(path string, img image.Image) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("chart file %q: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("chart file %q already exists: %w", path, shape.ErrOutputAlreadyExists)
		}
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := imaging.Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}

func newPlot(width, height, maxW, maxH int) plot {
	left := textWidth("00000", fontScale) + 2*tickLength
	bottom := textHeight(fontScale) + 3*tickLength
	margin := int(maxDiameter/2) + 2

	p := plot{
		area: image.Rect(left+margin, margin, width-margin, height-bottom-margin),
	}
	p.xLimit, p.xStep = axisScale(maxW)
	p.yLimit, p.yStep = axisScale(maxH)
	return p
}

// axisScale picks a round tick step and an axis limit that leaves some
// room above peak.
func axisScale(peak int) (limit, step int) {
	if peak < 1 {
		peak = 1
	}
	top := float64(peak) * headroom
	step = niceStep(top / targetTicks)
	limit = int(math.Ceil(top/float64(step))) * step
	if limit <= peak {
		limit += step
	}
	return limit, step
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) int {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5} {
		if raw <= m*mag {
			return int(m * mag)
		}
	}
	return int(10 * mag)
}

// tickLabel shortens round thousands above 9999 to "12k".
func tickLabel(v int) string {
	if v >= 10000 && v%1000 == 0 {
		return strconv.Itoa(v/1000) + "k"
	}
	return strconv.Itoa(v)
}

func drawAxes(img *image.NRGBA, p plot) {
	a := p.area
	th := textHeight(fontScale)

	for v := 0; v <= p.xLimit; v += p.xStep {
		x := a.Min.X + v*a.Dx()/p.xLimit
		vline(img, x, a.Min.Y, a.Max.Y, gridColor)
		vline(img, x, a.Max.Y, a.Max.Y+tickLength, axisColor)
		label := tickLabel(v)
		drawText(img, x-textWidth(label, fontScale)/2, a.Max.Y+2*tickLength, label, fontScale, axisColor)
	}
	for v := 0; v <= p.yLimit; v += p.yStep {
		y := a.Max.Y - v*a.Dy()/p.yLimit
		hline(img, a.Min.X, a.Max.X, y, gridColor)
		hline(img, a.Min.X-tickLength, a.Min.X, y, axisColor)
		label := tickLabel(v)
		drawText(img, a.Min.X-2*tickLength-textWidth(label, fontScale), y-th/2, label, fontScale, axisColor)
	}

	hline(img, a.Min.X, a.Max.X, a.Max.Y, axisColor)
	vline(img, a.Min.X, a.Min.Y, a.Max.Y, axisColor)
}

func hline(img *image.NRGBA, x0, x1, y int, c color.NRGBA) {
	for x := x0; x <= x1; x++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, c)
		}
	}
}

func vline(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, c)
		}
	}
}

// ramp maps count to [0, 1] between minCount and maxCount.
func ramp(count, minCount, maxCount int) float64 {
	if maxCount <= minCount {
		return 0
	}
	return float64(count-minCount) / float64(maxCount-minCount)
}

// diameter scales count linearly between minDiameter and maxDiameter. When
// every shape has the same count the bubbles share a fixed size.
func diameter(count, minCount, maxCount int) float64 {
	if maxCount <= minCount {
		return singleDiameter
	}
	return minDiameter + (maxDiameter-minDiameter)*ramp(count, minCount, maxCount)
}

// fillCircle paints a disc into layer. Pixels are stored unpremultiplied,
// which is how blend.Normal reads its foreground.
func fillCircle(layer *image.RGBA, cx, cy, radius float64, r, g, b, a uint8) {
	bounds := layer.Bounds()
	x0 := int(math.Floor(cx - radius))
	x1 := int(math.Ceil(cx + radius))
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	r2 := radius * radius

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !image.Pt(x, y).In(bounds) {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			i := layer.PixOffset(x, y)
			layer.Pix[i+0] = r
			layer.Pix[i+1] = g
			layer.Pix[i+2] = b
			layer.Pix[i+3] = a
		}
	}
}
