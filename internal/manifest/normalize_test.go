package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		path string
		ext  string
		want string
	}{
		{"plain", "/data/take1.npz", ".motion", "/data/take1.motion"},
		{"hyphen", "/data/walk-fast.npz", ".motion", "/data/walk_fast.motion"},
		{"space", "/data/walk fast.npz", ".motion", "/data/walk_fast.motion"},
		{"parentheses", "/data/clip (1).npz", ".motion", "/data/clip__1_.motion"},
		{"directories too", "/my-data/sub dir/a.npz", ".motion", "/my_data/sub_dir/a.motion"},
		{"only last extension", "/data/a.b.npz", ".motion", "/data/a.b.motion"},
		{"extension inside name kept", "/data/x.npz.backup.npz", ".motion", "/data/x.npz.backup.motion"},
		{"no extension", "/data/clip", ".motion", "/data/clip.motion"},
		{"dotted directory", "/data.v2/clip", ".motion", "/data.v2/clip.motion"},
		{"custom extension", "/data/a-b.npz", ".mot", "/data/a_b.mot"},
		{"empty extension uses default", "/data/a.npz", "", "/data/a.motion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIdentifier(tt.path, tt.ext))
		})
	}
}

func TestNormalizeIdentifier_Deterministic(t *testing.T) {
	path := "/data/CMU (v2)/01-01 poses.npz"
	first := NormalizeIdentifier(path, ".motion")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NormalizeIdentifier(path, ".motion"))
	}
}

func TestNormalizeIdentifier_Idempotent(t *testing.T) {
	paths := []string{
		"/data/take1.npz",
		"/data/CMU (v2)/01-01 poses.npz",
		"/a b/c-d/(e).npz",
	}

	for _, p := range paths {
		once := NormalizeIdentifier(p, ".motion")
		twice := NormalizeIdentifier(once, ".motion")
		assert.Equal(t, once, twice, p)
		assert.False(t, strings.ContainsAny(once, "- ()"), once)
	}
}

func TestNormalizeIdentifier_Collision(t *testing.T) {
	// distinct sources, same identifier
	assert.Equal(t,
		NormalizeIdentifier("/data/a-b.npz", ".motion"),
		NormalizeIdentifier("/data/a_b.npz", ".motion"),
	)
}
