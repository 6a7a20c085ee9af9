package medalcount

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
)

func TestHeaderCard(t *testing.T) {
	r := testRenderer(64)
	card := r.headerCard()

	want := textWidth(r.fonts.header, headerText) + 2*sidePadding
	assert.Equal(t, card.Bounds().Dx(), want)
	assert.Equal(t, card.Bounds().Dy(), 64)

	// black background, not transparent
	assert.Equal(t, card.RGBAAt(0, 0), colorBlack)
}

func TestCountryCardWidth(t *testing.T) {
	r := testRenderer(64)
	c := Country{ID: "NOR", GoldMedals: 9, SilverMedals: 4, BronzeMedals: 13, TotalMedals: 26}
	card := r.countryCard(c, 1)

	rcWidth := textWidth(r.fonts.country, "#1 NOR")
	medalsWidth := 0
	for _, n := range []int{9, 4, 13} {
		medalsWidth += dotSize + dotCountGap + textWidth(r.fonts.medals, fmt.Sprintf("%d", n)) + medalGap
	}
	want := sidePadding + rcWidth + gapAfterText + flagWidth + gapAfterFlag + medalsWidth + sidePadding

	assert.Equal(t, card.Bounds().Dx(), want)
	assert.Equal(t, card.Bounds().Dy(), 64)
}

func TestCountryCardDrawsMedalDots(t *testing.T) {
	r := testRenderer(64)
	c := Country{ID: "GER", GoldMedals: 5, SilverMedals: 3, BronzeMedals: 2}
	card := r.countryCard(c, 2)

	// the gold dot center sits just past the flag slot, on the midline
	x := sidePadding + textWidth(r.fonts.country, "#2 GER") + gapAfterText + flagWidth + gapAfterFlag
	assert.Equal(t, card.RGBAAt(x+dotSize/2, 32), colorGold)
}

func TestCountryCardTruncatesLongCode(t *testing.T) {
	r := testRenderer(64)
	card := r.countryCard(Country{ID: "TOOLONG"}, 3)

	rcWidth := textWidth(r.fonts.country, "#3 TOO")
	medalsWidth := 3 * (dotSize + dotCountGap + textWidth(r.fonts.medals, "0") + medalGap)
	want := sidePadding + rcWidth + gapAfterText + flagWidth + gapAfterFlag + medalsWidth + sidePadding
	assert.Equal(t, card.Bounds().Dx(), want)
}

func TestMessageCard(t *testing.T) {
	r := testRenderer(64)
	card := r.messageCard("NO DATA")

	want := textWidth(r.fonts.country, "NO DATA") + 2*sidePadding
	assert.Equal(t, card.Bounds().Dx(), want)
}

func TestPageFrameIsDisplaySized(t *testing.T) {
	r := testRenderer(64)
	frame := r.pageFrame(Country{ID: "USA", GoldMedals: 1}, 1, 128)

	assert.Equal(t, frame.Bounds().Dx(), 128)
	assert.Equal(t, frame.Bounds().Dy(), 64)
	assert.Equal(t, frame.RGBAAt(127, 63), colorBlack)
}

func TestPageFrameMedalDotsInBody(t *testing.T) {
	r := testRenderer(64)
	frame := r.pageFrame(Country{ID: "USA", GoldMedals: 8, SilverMedals: 7, BronzeMedals: 6}, 1, 128)

	// gold dot center: first medal section after the flag, on the body midline
	topBand := 64 / 3
	bodyMid := topBand + (64-topBand)/2
	x := sidePadding + flagWidth + gapAfterFlag
	assert.Equal(t, frame.RGBAAt(x+dotSize/2, bodyMid), colorGold)
}

func TestMessageFrameCentersText(t *testing.T) {
	r := testRenderer(64)
	frame := r.messageFrame("NO DATA", 128)

	assert.Equal(t, frame.Bounds().Dx(), 128)
	// something white actually got drawn
	found := false
	for x := 0; x < 128 && !found; x++ {
		for y := 0; y < 64 && !found; y++ {
			if frame.RGBAAt(x, y) == colorWhite {
				found = true
			}
		}
	}
	assert.Assert(t, found, "expected white text pixels on the frame")
}
