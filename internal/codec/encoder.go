package codec

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// EncodePNG serializes a bitmap as PNG. Output is always PNG regardless of
// the format the source was decoded from.
func EncodePNG(b *ir.Bitmap) ([]byte, error) {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("%w: empty bitmap", ErrEncode)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return nil, fmt.Errorf("%w: expected %d pixel bytes for %dx%d, got %d",
			ErrEncode, b.Width*b.Height*4, b.Width, b.Height, len(b.Pix))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, b.NRGBA(), imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
