package ir

import (
	"image"
	"image/draw"
)

// Bitmap is the intermediate representation passed between the codec, the
// resampler, the crop mapper and the quantizer. Pixels are stored as
// interleaved, non-premultiplied R,G,B,A bytes (4 bytes per pixel, row-major
// order). A Bitmap is never modified after it has been handed to another
// stage; every transform allocates a new one.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte // len = Width * Height * 4
}

// Dims is a width/height pair in pixels.
type Dims struct {
	Width  int
	Height int
}

// NewBitmap allocates a zeroed (fully transparent) bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Dims returns the bitmap dimensions.
func (b *Bitmap) Dims() Dims {
	return Dims{Width: b.Width, Height: b.Height}
}

// Offset returns the index of the first byte of pixel (x, y) in Pix.
func (b *Bitmap) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBA returns the four channel values of pixel (x, y).
func (b *Bitmap) RGBA(x, y int) [4]byte {
	i := b.Offset(x, y)
	return [4]byte{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// Set writes pixel (x, y). Only the producer of a bitmap calls Set.
func (b *Bitmap) Set(x, y int, px [4]byte) {
	i := b.Offset(x, y)
	copy(b.Pix[i:i+4], px[:])
}

// NRGBA returns an *image.NRGBA view sharing the bitmap's pixel memory.
func (b *Bitmap) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// FromImage converts any image.Image into a Bitmap with its origin at (0, 0).
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	out := NewBitmap(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := out.Width * 4
		for y := 0; y < out.Height; y++ {
			so := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Pix[y*rowLen:(y+1)*rowLen], src.Pix[so:so+rowLen])
		}
		return out
	}

	draw.Draw(out.NRGBA(), out.NRGBA().Rect, img, bounds.Min, draw.Src)
	return out
}
