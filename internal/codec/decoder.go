package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

var (
	// ErrDecode reports unreadable or corrupt image bytes.
	ErrDecode = errors.New("decode error")
	// ErrEncode reports a failure to serialize a bitmap.
	ErrEncode = errors.New("encode error")
)

// Decode decodes a JPEG, PNG or WebP image from memory into an RGBA bitmap.
// EXIF orientation is applied, so the bitmap is upright as displayed.
// Only the first frame of multi-frame inputs is ever read.
func Decode(data []byte) (*ir.Bitmap, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: data too short for an image (%d bytes)", ErrDecode, len(data))
	}

	img, err := decodeOriented(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}

	return ir.FromImage(img), nil
}

func decodeOriented(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
