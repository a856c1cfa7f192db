package quantize

import (
	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// cellReducer collapses the source rectangle [x0,x1) x [y0,y1) to one pixel.
type cellReducer func(src *ir.Bitmap, x0, y0, x1, y1 int) [4]byte

// averageCell returns the rounded per-channel mean of the cell.
func averageCell(src *ir.Bitmap, x0, y0, x1, y1 int) [4]byte {
	var sum [4]uint64
	for y := y0; y < y1; y++ {
		row := src.Pix[src.Offset(x0, y):src.Offset(x1, y)]
		for i := 0; i < len(row); i += 4 {
			sum[0] += uint64(row[i])
			sum[1] += uint64(row[i+1])
			sum[2] += uint64(row[i+2])
			sum[3] += uint64(row[i+3])
		}
	}

	n := uint64((x1 - x0) * (y1 - y0))
	var out [4]byte
	for c := range out {
		out[c] = uint8((sum[c] + n/2) / n)
	}
	return out
}

// majority finds the mode of a cell. Its buffers are reused between cells,
// so one instance must not be shared across goroutines.
type majority struct {
	index  map[uint32]int
	colors []uint32
	counts []int
}

func newMajority() *majority {
	return &majority{index: make(map[uint32]int)}
}

// cell returns the most frequent exact RGBA value. Ties go to the color
// seen first in row-major order within the cell.
func (m *majority) cell(src *ir.Bitmap, x0, y0, x1, y1 int) [4]byte {
	clear(m.index)
	m.colors = m.colors[:0]
	m.counts = m.counts[:0]

	for y := y0; y < y1; y++ {
		row := src.Pix[src.Offset(x0, y):src.Offset(x1, y)]
		for i := 0; i < len(row); i += 4 {
			key := uint32(row[i])<<24 | uint32(row[i+1])<<16 | uint32(row[i+2])<<8 | uint32(row[i+3])
			if j, ok := m.index[key]; ok {
				m.counts[j]++
				continue
			}
			m.index[key] = len(m.colors)
			m.colors = append(m.colors, key)
			m.counts = append(m.counts, 1)
		}
	}

	best := 0
	for j := 1; j < len(m.counts); j++ {
		if m.counts[j] > m.counts[best] {
			best = j
		}
	}

	key := m.colors[best]
	return [4]byte{uint8(key >> 24), uint8(key >> 16), uint8(key >> 8), uint8(key)}
}
