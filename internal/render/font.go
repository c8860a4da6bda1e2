package render

import (
	"image"
	"image/color"
)

// glyphs is a 3x5 pixel font covering what axis labels need.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'k': {"100", "101", "110", "101", "101"},
}

const (
	glyphWidth  = 3
	glyphHeight = 5
	glyphGap    = 1
)

// textWidth returns the width in pixels of text drawn at the given scale.
func textWidth(text string, scale int) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return (n*(glyphWidth+glyphGap) - glyphGap) * scale
}

// textHeight returns the height in pixels of a line drawn at scale.
func textHeight(scale int) int {
	return glyphHeight * scale
}

// drawText draws text with its top-left corner at (x, y). Unknown runes
// leave a gap. Pixels outside img are clipped.
func drawText(img *image.NRGBA, x, y int, text string, scale int, fg color.NRGBA) {
	bounds := img.Bounds()
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if ok {
			for row, line := range glyph {
				for col, pixel := range line {
					if pixel != '1' {
						continue
					}
					for dy := 0; dy < scale; dy++ {
						for dx := 0; dx < scale; dx++ {
							p := image.Pt(cx+col*scale+dx, y+row*scale+dy)
							if p.In(bounds) {
								img.SetNRGBA(p.X, p.Y, fg)
							}
						}
					}
				}
			}
		}
		cx += (glyphWidth + glyphGap) * scale
	}
}
