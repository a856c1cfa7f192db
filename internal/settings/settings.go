// Package settings loads the pixelation defaults from a settings file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/j031nich0145/pxl8-sub000/internal/level"
	"github.com/j031nich0145/pxl8-sub000/internal/quantize"
)

// ErrInvalid reports a settings file with out-of-range values.
var ErrInvalid = errors.New("invalid settings")

// Settings are the defaults the CLI starts from.
type Settings struct {
	PixelationLevel  float64         `json:"pixelationLevel" yaml:"pixelationLevel" mapstructure:"pixelationLevel"`
	PixelationMethod quantize.Method `json:"pixelationMethod" yaml:"pixelationMethod" mapstructure:"pixelationMethod"`
	LiveUpdate       bool            `json:"liveUpdate" yaml:"liveUpdate" mapstructure:"liveUpdate"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		PixelationLevel:  level.DefaultLevel,
		PixelationMethod: quantize.Average,
		LiveUpdate:       true,
	}
}

// Validate checks that s holds usable values.
func (s Settings) Validate() error {
	if math.IsNaN(s.PixelationLevel) || s.PixelationLevel < level.MinLevel || s.PixelationLevel > level.MaxLevel {
		return fmt.Errorf("%w: pixelationLevel %v not in [%v, %v]", ErrInvalid, s.PixelationLevel, level.MinLevel, level.MaxLevel)
	}
	if _, err := s.PixelationMethod.MarshalText(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load reads settings from a JSON or YAML file, chosen by extension. Keys
// missing from the file keep their defaults; a missing file yields Default().
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	raw := map[string]any{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := decode(raw, &s); err != nil {
		return Default(), fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decode(raw map[string]any, out *Settings) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToMethodHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func stringToMethodHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(quantize.Method(0)) {
			return data, nil
		}
		return quantize.ParseMethod(data.(string))
	}
}
