package girpcgen

import (
	"testing"

	"github.com/varekai/girpc/codec"
)

// The generator's codec path table and the runtime codec set are maintained
// separately; this pins them to the same closed vocabulary so one cannot
// drift from the other.
func TestCodecPathsMatchCodecSet(t *testing.T) {
	names := codec.Names()
	if len(codecPaths) != len(names) {
		t.Errorf("codecPaths has %d entries, codec.Names() has %d", len(codecPaths), len(names))
	}
	for _, name := range names {
		path, err := codecPath(name)
		if err != nil {
			t.Errorf("codecPath(%q): %v", name, err)
			continue
		}
		if _, err := codec.Get(name); err != nil {
			t.Errorf("codec.Get(%q): %v", name, err)
		}
		if path == "" {
			t.Errorf("codecPath(%q) = empty path", name)
		}
	}
}
