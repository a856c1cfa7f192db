package quantize

import (
	"fmt"
	"strings"
)

// Method selects how a block of source pixels is reduced to one pixel.
type Method int

const (
	// Average takes the per-channel mean of the block, alpha included.
	Average Method = iota
	// MajorityColor takes the most frequent exact RGBA value in the block.
	MajorityColor
	// NearestSample takes the block's top-left source pixel.
	NearestSample
)

// String returns the persisted settings name of the method. MajorityColor
// is "nearest" and NearestSample is "spatial", matching saved settings.
func (m Method) String() string {
	switch m {
	case Average:
		return "average"
	case MajorityColor:
		return "nearest"
	case NearestSample:
		return "spatial"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a settings or flag value to a Method. The long names
// "majority" and "sample" are accepted as aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "avg":
		return Average, nil
	case "nearest", "majority":
		return MajorityColor, nil
	case "spatial", "sample":
		return NearestSample, nil
	default:
		return 0, fmt.Errorf("unknown pixelation method: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m < Average || m > NearestSample {
		return nil, fmt.Errorf("invalid pixelation method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
