package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

func dims(w, h int) ir.Dims { return ir.Dims{Width: w, Height: h} }

func assertRectNear(t *testing.T, want, got Rect, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Width, got.Width, delta, "width")
	assert.InDelta(t, want.Height, got.Height, delta, "height")
}

func TestMapCropIdentity(t *testing.T) {
	for _, tc := range []struct {
		d    ir.Dims
		rect Rect
	}{
		{d: dims(800, 600), rect: Rect{X: 100, Y: 50, Width: 400, Height: 300}},
		{d: dims(800, 600), rect: Rect{X: 0, Y: 0, Width: 800, Height: 600}},
		{d: dims(33, 17), rect: Rect{X: 1.25, Y: 0.5, Width: 31.75, Height: 16.5}},
	} {
		assert.Equal(t, tc.rect, MapCrop(tc.rect, tc.d, tc.d))
	}
}

func TestMapCropMatchByHeight(t *testing.T) {
	rect := Rect{X: 100, Y: 50, Width: 400, Height: 300}
	ref := dims(800, 600)

	for _, tc := range []struct {
		name   string
		target ir.Dims
		want   Rect
	}{
		{name: "wider same height", target: dims(1600, 600), want: rect},
		{name: "half scale", target: dims(400, 300), want: Rect{X: 50, Y: 25, Width: 200, Height: 150}},
		{name: "double scale", target: dims(1600, 1200), want: Rect{X: 200, Y: 100, Width: 800, Height: 600}},
		{name: "narrower shrinks", target: dims(300, 600), want: Rect{X: 0, Y: 50, Width: 300, Height: 300}},
		{name: "narrower shifts", target: dims(450, 600), want: Rect{X: 50, Y: 50, Width: 400, Height: 300}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := MapCrop(rect, ref, tc.target)
			assertRectNear(t, tc.want, got, 1e-9)
			require.NoError(t, got.Validate(tc.target))
		})
	}
}

func TestCenteredCrop(t *testing.T) {
	assertRectNear(t, Rect{X: 250, Y: 0, Width: 500, Height: 500}, CenteredCrop(dims(1000, 500), 1), 1e-9)
	assertRectNear(t, Rect{X: 0, Y: 312.5, Width: 500, Height: 375}, CenteredCrop(dims(500, 1000), 4.0/3), 1e-9)
	assertRectNear(t, Rect{X: 0, Y: 0, Width: 300, Height: 200}, CenteredCrop(dims(300, 200), 1.5), 1e-9)
	// invalid ratio falls back to the full image
	assert.Equal(t, Rect{Width: 10, Height: 20}, CenteredCrop(dims(10, 20), 0))
}

func TestRotateRectTwice(t *testing.T) {
	d := dims(1000, 1000)
	rect := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	once := RotateRect(rect, d, rect.Height/rect.Width)
	assert.InDelta(t, 300, once.Width, 1)
	assert.InDelta(t, 400, once.Height, 1)
	require.NoError(t, once.Validate(d))

	twice := RotateRect(once, d, once.Height/once.Width)
	assert.InDelta(t, rect.Width, twice.Width, 1)
	assert.InDelta(t, rect.Height, twice.Height, 1)
	require.NoError(t, twice.Validate(d))
}

func TestRotateRectShrinksToFit(t *testing.T) {
	d := dims(400, 300)
	rect := Rect{X: 0, Y: 0, Width: 400, Height: 300}

	got := RotateRect(rect, d, 0.75)
	assert.InDelta(t, 180, got.Width, 1e-9)
	assert.InDelta(t, 240, got.Height, 1e-9)
	assert.LessOrEqual(t, got.Area(), rect.Area())
	assert.InDelta(t, 110, got.X, 1e-9)
	assert.InDelta(t, 30, got.Y, 1e-9)
	require.NoError(t, got.Validate(d))
}

func TestRotateRectMinimumSize(t *testing.T) {
	d := dims(1000, 1000)
	rect := Rect{X: 500, Y: 500, Width: 60, Height: 20}

	got := RotateRect(rect, d, 3)
	assert.InDelta(t, 150, got.Width, 1e-9)
	assert.InDelta(t, 50, got.Height, 1e-9)
	require.NoError(t, got.Validate(d))

	// an image smaller than the minimum caps it at the image size
	small := dims(40, 30)
	got = RotateRect(Rect{Width: 20, Height: 10}, small, 1)
	assert.InDelta(t, 30, got.Width, 1e-9)
	assert.InDelta(t, 30, got.Height, 1e-9)
	require.NoError(t, got.Validate(small))
}

func TestRotateRectRecentersAtEdge(t *testing.T) {
	d := dims(1000, 600)
	rect := Rect{X: 0, Y: 0, Width: 400, Height: 300}

	got := RotateRect(rect, d, 0.75)
	require.NoError(t, got.Validate(d))
	assert.InDelta(t, (1000-got.Width)/2, got.X, 1e-9)
	assert.InDelta(t, (600-got.Height)/2, got.Y, 1e-9)
}

func TestScaleRect(t *testing.T) {
	d := dims(1000, 1000)
	rect := Rect{X: 100, Y: 100, Width: 200, Height: 100}

	up := ScaleRect(rect, d, 2, true)
	assertRectNear(t, Rect{X: 100, Y: 100, Width: 210, Height: 105}, up, 1e-9)

	down := ScaleRect(rect, d, 2, false)
	assertRectNear(t, Rect{X: 100, Y: 100, Width: 190, Height: 95}, down, 1e-9)

	// minimum size
	small := ScaleRect(Rect{X: 0, Y: 0, Width: 52, Height: 52}, d, 1, false)
	assert.InDelta(t, MinCropSize, small.Width, 1e-9)
	assert.InDelta(t, MinCropSize, small.Height, 1e-9)

	// growth stops at the edge
	edge := ScaleRect(Rect{X: 500, Y: 500, Width: 490, Height: 490}, d, 1, true)
	assert.InDelta(t, 500, edge.Width, 1e-9)
	require.NoError(t, edge.Validate(d))
}

func TestMoveRect(t *testing.T) {
	d := dims(100, 80)
	rect := Rect{X: 10, Y: 10, Width: 50, Height: 50}

	assertRectNear(t, Rect{X: 20, Y: 0, Width: 50, Height: 50}, MoveRect(rect, d, 10, -30), 1e-9)
	assertRectNear(t, Rect{X: 50, Y: 30, Width: 50, Height: 50}, MoveRect(rect, d, 500, 500), 1e-9)
	assertRectNear(t, Rect{X: 0, Y: 0, Width: 50, Height: 50}, MoveRect(rect, d, -500, -500), 1e-9)
}

func TestChangeAspect(t *testing.T) {
	d := dims(1000, 1000)
	rect := Rect{X: 100, Y: 100, Width: 400, Height: 400}

	got := ChangeAspect(rect, d, 4)
	assert.InDelta(t, 800, got.Width, 1e-9)
	assert.InDelta(t, 200, got.Height, 1e-9)
	assert.InDelta(t, 100, got.X, 1e-9)
	require.NoError(t, got.Validate(d))

	// too large for the image at this ratio
	full := ChangeAspect(Rect{Width: 1000, Height: 1000}, d, 2)
	assert.InDelta(t, 1000, full.Width, 1e-9)
	assert.InDelta(t, 500, full.Height, 1e-9)
	require.NoError(t, full.Validate(d))

	// overflow re-centres on that axis
	moved := ChangeAspect(Rect{X: 600, Y: 0, Width: 400, Height: 400}, d, 4)
	assert.InDelta(t, 100, moved.X, 1e-9)
	require.NoError(t, moved.Validate(d))
}

func TestValidate(t *testing.T) {
	d := dims(100, 50)
	assert.NoError(t, Rect{X: 0, Y: 0, Width: 100, Height: 50}.Validate(d))
	for _, r := range []Rect{
		{X: -1, Y: 0, Width: 10, Height: 10},
		{X: 0, Y: 0, Width: 0, Height: 10},
		{X: 95, Y: 0, Width: 10, Height: 10},
		{X: 0, Y: 45, Width: 10, Height: 10},
	} {
		assert.ErrorIs(t, r.Validate(d), ErrInvalidRect, "%v", r)
	}
}

func TestParseAspectRatio(t *testing.T) {
	for in, want := range map[string]float64{"1:1": 1, "3:2": 1.5, "4:3": 4.0 / 3, "16:9": 16.0 / 9, "1.25": 1.25} {
		got, err := ParseAspectRatio(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-12, in)
	}
	for _, in := range []string{"", "0:1", "a:b", "-2", "NaN", "1:0"} {
		_, err := ParseAspectRatio(in)
		assert.Error(t, err, in)
	}
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect("100, 50,400,300.5")
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 100, Y: 50, Width: 400, Height: 300.5}, r)

	_, err = ParseRect("1,2,3")
	assert.Error(t, err)
	_, err = ParseRect("1,2,x,4")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	src := ir.NewBitmap(6, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			src.Set(x, y, [4]byte{uint8(x), uint8(y), 0, 255})
		}
	}

	out, err := Apply(src, Rect{X: 1.2, Y: 0.6, Width: 3, Height: 2.4})
	require.NoError(t, err)
	require.Equal(t, dims(3, 2), out.Dims())
	assert.Equal(t, [4]byte{1, 1, 0, 255}, out.RGBA(0, 0))
	assert.Equal(t, [4]byte{3, 2, 0, 255}, out.RGBA(2, 1))

	_, err = Apply(src, Rect{X: 5, Y: 0, Width: 3, Height: 2})
	assert.ErrorIs(t, err, ErrInvalidRect)
}
