package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j031nich0145/pxl8-sub000/internal/quantize"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 5.5, s.PixelationLevel)
	assert.Equal(t, quantize.Average, s.PixelationMethod)
	assert.True(t, s.LiveUpdate)
	assert.NoError(t, s.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "settings.json", `{"pixelationLevel": 7.25, "pixelationMethod": "nearest", "liveUpdate": false}`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{PixelationLevel: 7.25, PixelationMethod: quantize.MajorityColor, LiveUpdate: false}, s)
}

func TestLoadYAMLPartial(t *testing.T) {
	path := writeFile(t, "settings.yaml", "pixelationMethod: spatial\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5.5, s.PixelationLevel)
	assert.Equal(t, quantize.NearestSample, s.PixelationMethod)
	assert.True(t, s.LiveUpdate)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"bad.json":    `{"pixelationLevel": 42}`,
		"method.json": `{"pixelationMethod": "bogus"}`,
		"syntax.json": `{"pixelationLevel":`,
		"type.yaml":   "pixelationLevel: abc\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Load(writeFile(t, name, content))
			assert.Error(t, err)
			assert.Equal(t, Default(), s)
		})
	}

	_, err := Load(writeFile(t, "range.json", `{"pixelationLevel": 0.5}`))
	assert.ErrorIs(t, err, ErrInvalid)
}
