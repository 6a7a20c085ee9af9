package main

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const windowScale = 6

// windowDisplay previews the matrix in a desktop window, scaled up with
// nearest-neighbor sampling so the LED pixels stay blocky. The board loop
// writes frames from its own goroutine; ebiten reads them on the main one.
type windowDisplay struct {
	width  int
	height int
	buf    *image.RGBA

	mu     sync.Mutex
	shadow *image.RGBA
	dirty  bool
}

func newWindowDisplay() *windowDisplay {
	return &windowDisplay{width: 128, height: 64}
}

func (wd *windowDisplay) open(settings configSettings) error {
	if w := settings.GetInt(sWidth); w > 0 {
		wd.width = w
	}
	if h := settings.GetInt(sHeight); h > 0 {
		wd.height = h
	}
	wd.shadow = image.NewRGBA(image.Rect(0, 0, wd.width, wd.height))
	return nil
}

func (wd *windowDisplay) closeDisplay() {}

func (wd *windowDisplay) Size() (int, int) {
	return wd.width, wd.height
}

func (wd *windowDisplay) Image() *image.RGBA {
	return wd.buf
}

func (wd *windowDisplay) SetImage(img *image.RGBA) {
	wd.buf = img
}

func (wd *windowDisplay) UpdateDisplay() error {
	if wd.buf == nil {
		return nil
	}
	wd.mu.Lock()
	draw.Draw(wd.shadow, wd.shadow.Bounds(), wd.buf, wd.buf.Bounds().Min, draw.Src)
	wd.dirty = true
	wd.mu.Unlock()
	return nil
}

func (wd *windowDisplay) Clear() {
	black := image.NewUniform(color.RGBA{A: 255})
	if wd.buf != nil {
		draw.Draw(wd.buf, wd.buf.Bounds(), black, image.Point{}, draw.Src)
	}
	wd.mu.Lock()
	draw.Draw(wd.shadow, wd.shadow.Bounds(), black, image.Point{}, draw.Src)
	wd.dirty = true
	wd.mu.Unlock()
}

// boardGame adapts the preview to ebiten's loop. It also feeds key presses
// into the board channel so the window works without GPIO buttons.
type boardGame struct {
	wd    *windowDisplay
	comms commChannels
	tex   *ebiten.Image
}

func (g *boardGame) Update() error {
	select {
	case <-g.comms.quit:
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.comms.board <- boardMsg{id: msgNextPlugin}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.comms.board <- boardMsg{id: msgRefresh}
	}

	g.wd.mu.Lock()
	if g.wd.dirty {
		g.tex = ebiten.NewImageFromImage(g.wd.shadow)
		g.wd.dirty = false
	}
	g.wd.mu.Unlock()
	return nil
}

func (g *boardGame) Draw(screen *ebiten.Image) {
	if g.tex == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.tex, op)
}

func (g *boardGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.wd.width * windowScale, g.wd.height * windowScale
}

// runWindow blocks on the main goroutine until quit or the window closes.
func (wd *windowDisplay) runWindow(rt runtimeConfig) error {
	ebiten.SetWindowSize(wd.width*windowScale, wd.height*windowScale)
	ebiten.SetWindowTitle("signboard")
	return ebiten.RunGame(&boardGame{wd: wd, comms: rt.comms})
}
