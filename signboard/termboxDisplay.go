package main

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

// termboxDisplay simulates the matrix in a terminal. Each text cell holds
// two vertical pixels drawn with the upper-half-block glyph: foreground
// color is the top pixel, background the bottom one.
type termboxDisplay struct {
	width  int
	height int
	buf    *image.RGBA
	opened bool
	attrs  map[color.RGBA]termbox.Attribute
}

const halfBlock = '▀'

// xterm 256-color palette, built once for quantization
var palette256 = buildPalette256()

func buildPalette256() []colorful.Color {
	p := make([]colorful.Color, 256)

	base := [][3]uint8{
		{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
		{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
		{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, b := range base {
		p[i], _ = colorful.MakeColor(color.RGBA{b[0], b[1], b[2], 255})
	}

	level := func(n int) uint8 {
		if n == 0 {
			return 0
		}
		return uint8(55 + 40*n)
	}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				idx := 16 + 36*r + 6*g + b
				p[idx], _ = colorful.MakeColor(color.RGBA{level(r), level(g), level(b), 255})
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p[232+i], _ = colorful.MakeColor(color.RGBA{v, v, v, 255})
	}

	return p
}

func (td *termboxDisplay) open(settings configSettings) error {
	td.width = settings.GetInt(sWidth)
	td.height = settings.GetInt(sHeight)
	td.attrs = make(map[color.RGBA]termbox.Attribute)

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "termbox init")
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	termbox.Flush()
	td.opened = true
	return nil
}

func (td *termboxDisplay) closeDisplay() {
	if td.opened {
		termbox.Close()
		td.opened = false
	}
}

func (td *termboxDisplay) Size() (int, int) {
	return td.width, td.height
}

func (td *termboxDisplay) Image() *image.RGBA {
	return td.buf
}

func (td *termboxDisplay) SetImage(img *image.RGBA) {
	td.buf = img
}

func (td *termboxDisplay) UpdateDisplay() error {
	if !td.opened || td.buf == nil {
		return nil
	}

	rows := td.height / 2
	for ty := 0; ty < rows; ty++ {
		for x := 0; x < td.width; x++ {
			top := td.quantize(td.buf.RGBAAt(x, ty*2))
			bottom := td.quantize(td.buf.RGBAAt(x, ty*2+1))
			termbox.SetCell(x, ty, halfBlock, top, bottom)
		}
	}
	return termbox.Flush()
}

func (td *termboxDisplay) Clear() {
	if td.buf != nil {
		draw.Draw(td.buf, td.buf.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	}
	if td.opened {
		termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
		termbox.Flush()
	}
}

// quantize maps an RGB value to the nearest entry of the 256-color palette,
// memoized because frames reuse a handful of colors.
func (td *termboxDisplay) quantize(c color.RGBA) termbox.Attribute {
	c.A = 255
	if attr, ok := td.attrs[c]; ok {
		return attr
	}

	target, _ := colorful.MakeColor(c)
	best := 0
	bestDist := target.DistanceLab(palette256[0])
	for i := 1; i < len(palette256); i++ {
		if d := target.DistanceLab(palette256[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}

	// termbox 256-color mode numbers the palette from 1
	attr := termbox.Attribute(best + 1)
	td.attrs[c] = attr
	return attr
}
