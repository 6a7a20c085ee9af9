package medalcount

import (
	"bytes"
	"image"
	"log"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// flagSet caches downloaded flag art, pre-scaled to the row size. An entry
// holding nil marks a URL that already failed so we never hammer a dead
// link, and entries are kept for the life of the plugin.
type flagSet struct {
	images map[string]*image.RGBA
	f      *fetcher
	logger *log.Logger
}

func newFlagSet(f *fetcher, logger *log.Logger) *flagSet {
	return &flagSet{
		images: make(map[string]*image.RGBA),
		f:      f,
		logger: logger,
	}
}

// prefetch downloads any flags we have not seen yet. It runs from Update so
// the render path never touches the network.
func (s *flagSet) prefetch(list []Country) {
	for _, c := range list {
		if c.FlagURL == "" {
			continue
		}
		if _, seen := s.images[c.ID]; seen {
			continue
		}
		img, err := s.fetchFlag(c.FlagURL)
		if err != nil {
			s.logger.Printf("No flag for %s: %s", c.ID, err.Error())
			s.images[c.ID] = nil
			continue
		}
		s.images[c.ID] = img
	}
}

// lookup returns the scaled flag, or nil when it is missing or failed.
func (s *flagSet) lookup(code string) *image.RGBA {
	return s.images[code]
}

func (s *flagSet) clear() {
	s.images = make(map[string]*image.RGBA)
}

func (s *flagSet) fetchFlag(url string) (*image.RGBA, error) {
	data, err := s.f.fetchBytes(url)
	if err != nil {
		return nil, err
	}
	if isSVG(url, data) {
		return rasterizeSVG(data)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode flag %s", url)
	}
	return scaleFlag(src), nil
}

func isSVG(url string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(url), ".svg") {
		return true
	}
	return bytes.Contains(data[:min(len(data), 256)], []byte("<svg"))
}

// rasterizeSVG renders vector flags straight at the row size, no rescale.
func rasterizeSVG(data []byte) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parse svg flag")
	}
	icon.SetTarget(0, 0, float64(flagWidth), float64(flagHeight))
	img := image.NewRGBA(image.Rect(0, 0, flagWidth, flagHeight))
	scanner := rasterx.NewScannerGV(flagWidth, flagHeight, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(flagWidth, flagHeight, scanner), 1.0)
	return img, nil
}

func scaleFlag(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, flagWidth, flagHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
