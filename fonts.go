package medalcount

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// fontSet holds the three faces the cards are drawn with. They may all be
// the same face when only one font file is available.
type fontSet struct {
	header  font.Face
	country font.Face
	medals  font.Face
}

// loadFonts prefers the PressStart2P arcade font, falls back to the tiny
// 4x6 pixel font, and finally to the built-in bitmap face so rendering
// always works even on a bare install.
func loadFonts(dir string, logger *log.Logger) fontSet {
	if fs, err := loadTrueType(filepath.Join(dir, "PressStart2P-Regular.ttf"), 10, 10, 10); err == nil {
		return fs
	}
	if fs, err := loadTrueType(filepath.Join(dir, "4x6-font.ttf"), 8, 8, 6); err == nil {
		return fs
	}
	logger.Printf("Could not load custom fonts from %s, using built-in face", dir)
	face := basicfont.Face7x13
	return fontSet{header: face, country: face, medals: face}
}

func loadTrueType(path string, headerPt, countryPt, medalsPt float64) (fontSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fontSet{}, err
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return fontSet{}, errors.Wrapf(err, "parse font %s", path)
	}

	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var fs fontSet
	if fs.header, err = newFace(headerPt); err != nil {
		return fontSet{}, err
	}
	if fs.country, err = newFace(countryPt); err != nil {
		return fontSet{}, err
	}
	if fs.medals, err = newFace(medalsPt); err != nil {
		return fontSet{}, err
	}
	return fs, nil
}
