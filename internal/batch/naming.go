package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputName returns the file name for the output of an input named name.
func OutputName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-pxl8.png"
}

// OutputNames returns an OutputName for every output. When two inputs share
// a base name, later ones get a numeric suffix.
func OutputNames(outputs []Output) []string {
	seen := make(map[string]int, len(outputs))
	names := make([]string, len(outputs))
	for i, o := range outputs {
		name := OutputName(o.Name)
		c := seen[name]
		seen[name] = c + 1
		if c > 0 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), c+1, ext)
		}
		names[i] = name
	}
	return names
}
