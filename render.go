package medalcount

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const headerText = "MILANO CORTINA 2026"

// Card geometry. All pixel values are tuned for a 128x64 matrix but scale
// with the display height the host reports.
const (
	flagWidth  = 36
	flagHeight = 24

	dotSize      = 10 // medal dot diameter
	dotCountGap  = 4  // dot to its count
	medalGap     = 8  // after each medal section
	gapAfterText = 6
	gapAfterFlag = 8
	sidePadding  = 8

	itemGap    = 24 // between cards in the ticker strip
	elementGap = 8
)

var (
	colorLightBlue = color.RGBA{R: 135, G: 206, B: 250, A: 255}
	colorGold      = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	colorSilver    = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	colorBronze    = color.RGBA{R: 205, G: 127, B: 50, A: 255}
	colorWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBlack     = color.RGBA{A: 255}
)

// medal colors in display order: gold, silver, bronze
var medalColors = []color.RGBA{colorGold, colorSilver, colorBronze}

// renderer builds the individual cards that make up a frame or the ticker
// strip. Every card is the full display height on a black background.
type renderer struct {
	fonts  fontSet
	flags  *flagSet
	height int
}

func (r *renderer) headerCard() *image.RGBA {
	w := textWidth(r.fonts.header, headerText)
	card := newCard(w+2*sidePadding, r.height)
	drawText(card, r.fonts.header, headerText, sidePadding, centerBaseline(r.fonts.header, r.height), colorLightBlue)
	return card
}

// countryCard lays out one row:
//
//	[#rank CODE]  [flag]  [gold dot NN]  [silver dot NN]  [bronze dot NN]
//
// with everything centered vertically.
func (r *renderer) countryCard(c Country, rank int) *image.RGBA {
	code := c.ID
	if len(code) > 3 {
		code = code[:3]
	}
	rankCode := fmt.Sprintf("#%d %s", rank, strings.ToUpper(code))
	rcWidth := textWidth(r.fonts.country, rankCode)

	counts := []int{c.GoldMedals, c.SilverMedals, c.BronzeMedals}
	medalsWidth := 0
	for _, n := range counts {
		medalsWidth += dotSize + dotCountGap + textWidth(r.fonts.medals, fmt.Sprintf("%d", n)) + medalGap
	}

	cardW := sidePadding + rcWidth + gapAfterText + flagWidth + gapAfterFlag + medalsWidth + sidePadding
	card := newCard(cardW, r.height)
	midY := r.height / 2

	x := sidePadding
	drawText(card, r.fonts.country, rankCode, x, centerBaseline(r.fonts.country, r.height), colorWhite)
	x += rcWidth + gapAfterText

	if flag := r.flags.lookup(strings.ToUpper(c.ID)); flag != nil {
		flagY := midY - flagHeight/2
		draw.Draw(card, image.Rect(x, flagY, x+flagWidth, flagY+flagHeight), flag, flag.Bounds().Min, draw.Src)
	}
	x += flagWidth + gapAfterFlag

	gc := draw2dimg.NewGraphicContext(card)
	for i, n := range counts {
		gc.SetFillColor(medalColors[i])
		draw2dkit.Circle(gc, float64(x)+dotSize/2, float64(midY), dotSize/2)
		gc.Fill()
		x += dotSize + dotCountGap

		countStr := fmt.Sprintf("%d", n)
		drawText(card, r.fonts.medals, countStr, x, centerBaseline(r.fonts.medals, r.height), medalColors[i])
		x += textWidth(r.fonts.medals, countStr) + medalGap
	}

	return card
}

// messageCard is the single-line fallback, for "NO DATA" and friends.
func (r *renderer) messageCard(msg string) *image.RGBA {
	w := textWidth(r.fonts.country, msg)
	card := newCard(w+2*sidePadding, r.height)
	drawText(card, r.fonts.country, msg, sidePadding, centerBaseline(r.fonts.country, r.height), colorWhite)
	return card
}

// pageFrame lays out one country across the whole matrix for the paged
// variant: rank and code along the top, flag and medal counts below.
func (r *renderer) pageFrame(c Country, rank, width int) *image.RGBA {
	frame := newCard(width, r.height)

	code := c.ID
	if len(code) > 3 {
		code = code[:3]
	}
	rankCode := fmt.Sprintf("#%d %s", rank, strings.ToUpper(code))

	topBand := r.height / 3
	drawText(frame, r.fonts.country, rankCode, sidePadding,
		baselineAt(r.fonts.country, topBand/2), colorWhite)

	bodyMid := topBand + (r.height-topBand)/2

	x := sidePadding
	if flag := r.flags.lookup(strings.ToUpper(c.ID)); flag != nil {
		flagY := bodyMid - flagHeight/2
		draw.Draw(frame, image.Rect(x, flagY, x+flagWidth, flagY+flagHeight), flag, flag.Bounds().Min, draw.Src)
	}
	x += flagWidth + gapAfterFlag

	gc := draw2dimg.NewGraphicContext(frame)
	for i, n := range []int{c.GoldMedals, c.SilverMedals, c.BronzeMedals} {
		gc.SetFillColor(medalColors[i])
		draw2dkit.Circle(gc, float64(x)+dotSize/2, float64(bodyMid), dotSize/2)
		gc.Fill()
		x += dotSize + dotCountGap

		countStr := fmt.Sprintf("%d", n)
		drawText(frame, r.fonts.medals, countStr, x, baselineAt(r.fonts.medals, bodyMid), medalColors[i])
		x += textWidth(r.fonts.medals, countStr) + medalGap
	}

	return frame
}

// messageFrame centers a single line on a full-size frame.
func (r *renderer) messageFrame(msg string, width int) *image.RGBA {
	frame := newCard(width, r.height)
	w := textWidth(r.fonts.country, msg)
	drawText(frame, r.fonts.country, msg, (width-w)/2, centerBaseline(r.fonts.country, r.height), colorWhite)
	return frame
}

func newCard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBlack), image.Point{}, draw.Src)
	return img
}

func drawText(dst *image.RGBA, face font.Face, s string, x, baseline int, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// centerBaseline returns the baseline y that centers a line of text in a
// card of the given height.
func centerBaseline(face font.Face, height int) int {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	textH := ascent + m.Descent.Ceil()
	return (height-textH)/2 + ascent
}

// baselineAt returns the baseline y that centers a line of text on midY.
func baselineAt(face font.Face, midY int) int {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	textH := ascent + m.Descent.Ceil()
	return midY - textH/2 + ascent
}
