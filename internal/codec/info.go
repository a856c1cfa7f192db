package codec

import (
	"bytes"
	"fmt"
	"image"
)

// ImageInfo contains metadata about an encoded image.
type ImageInfo struct {
	Width  int
	Height int
	Format string // "png", "jpeg", "webp"
}

// GetInfo reads image format and displayed dimensions. PNG and WebP are
// probed from the header only; JPEG is decoded so that EXIF orientation is
// reflected in the size, matching Decode.
func GetInfo(data []byte) (*ImageInfo, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: data too short for an image (%d bytes)", ErrDecode, len(data))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	info := &ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}

	if format == "jpeg" {
		img, err := decodeOriented(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		info.Width, info.Height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	return info, nil
}
