package quantize

import (
	"fmt"
	"image/color"

	mediancut "github.com/ericpauley/go-quantize/quantize"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// LimitPalette maps every pixel of b to the nearest entry of a median-cut
// palette with at most colors entries. No dithering is applied so blocks
// stay flat. Fully transparent pixels are left untouched.
func LimitPalette(b *ir.Bitmap, colors int) (*ir.Bitmap, error) {
	if colors < 2 || colors > 256 {
		return nil, fmt.Errorf("palette size %d out of range [2, 256]", colors)
	}

	q := mediancut.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, colors), b.NRGBA())
	if len(pal) == 0 {
		return nil, fmt.Errorf("median cut produced an empty palette")
	}

	out := ir.NewBitmap(b.Width, b.Height)
	cache := make(map[uint32][4]byte)
	for i := 0; i < len(b.Pix); i += 4 {
		px := [4]byte{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
		if px[3] == 0 {
			copy(out.Pix[i:i+4], px[:])
			continue
		}
		key := uint32(px[0])<<24 | uint32(px[1])<<16 | uint32(px[2])<<8 | uint32(px[3])
		mapped, ok := cache[key]
		if !ok {
			c := pal.Convert(color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			mapped = [4]byte{n.R, n.G, n.B, n.A}
			cache[key] = mapped
		}
		copy(out.Pix[i:i+4], mapped[:])
	}
	return out, nil
}
