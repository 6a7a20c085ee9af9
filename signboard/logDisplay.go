package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// logDisplay records frames instead of driving hardware. Tests read the
// audit trail and the last flushed frame.
type logDisplay struct {
	width   int
	height  int
	buf     *image.RGBA
	last    *image.RGBA
	flushes int
	clears  int
	audit   []string
	logger  flogger
}

func newLogDisplay() *logDisplay {
	return &logDisplay{
		width:  128,
		height: 64,
		logger: &ThreadLogger{name: "Display"},
	}
}

func (ld *logDisplay) open(settings configSettings) error {
	if w := settings.GetInt(sWidth); w > 0 {
		ld.width = w
	}
	if h := settings.GetInt(sHeight); h > 0 {
		ld.height = h
	}
	ld.audit = []string{}
	return nil
}

func (ld *logDisplay) closeDisplay() {}

func (ld *logDisplay) Size() (int, int) {
	return ld.width, ld.height
}

func (ld *logDisplay) Image() *image.RGBA {
	return ld.buf
}

func (ld *logDisplay) SetImage(img *image.RGBA) {
	ld.buf = img
}

func (ld *logDisplay) UpdateDisplay() error {
	if ld.buf == nil {
		return nil
	}
	ld.flushes++
	copied := image.NewRGBA(ld.buf.Bounds())
	draw.Draw(copied, copied.Bounds(), ld.buf, ld.buf.Bounds().Min, draw.Src)
	ld.last = copied
	ld.audit = append(ld.audit, fmt.Sprintf("flush %dx%d", ld.buf.Bounds().Dx(), ld.buf.Bounds().Dy()))
	return nil
}

func (ld *logDisplay) Clear() {
	ld.clears++
	if ld.buf != nil {
		draw.Draw(ld.buf, ld.buf.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	}
	ld.audit = append(ld.audit, "clear")
}
