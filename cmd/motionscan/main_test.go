package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantmind-br/motionscan/internal/manifest"
	"github.com/quantmind-br/motionscan/internal/testutil"
	"github.com/quantmind-br/motionscan/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRoot returns a fresh root command with isolated viper and HOME
func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	cfgFile, verbose = "", false
	t.Cleanup(viper.Reset)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func writeDataset(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteMotion(t, filepath.Join(root, "take1.npz"), 24, 48)
	testutil.WriteMotion(t, filepath.Join(root, "take1_shape.npz"), 24, 48)
	testutil.WriteMotion(t, filepath.Join(root, "b", "walk-fast.npz"), 30, 90)
	return root
}

func TestInitConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgFile = "/test/config.yaml"
	defer func() { cfgFile = "" }()

	assert.NotPanics(t, initConfig)
	assert.Equal(t, "/test/config.yaml", viper.ConfigFileUsed())
}

func TestRoot_WritesManifest(t *testing.T) {
	cmd, _ := newTestRoot(t)
	root := writeDataset(t)
	out := filepath.Join(t.TempDir(), "out", "motions.yaml")

	cmd.SetArgs([]string{"-i", root, "-o", out, "--log-format", "json"})
	require.NoError(t, cmd.Execute())

	m, err := manifest.NewLoader().Load(out)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
	assert.True(t, strings.HasSuffix(m.Motions[0].File, "walk_fast.motion"))
	assert.True(t, strings.HasSuffix(m.Motions[1].File, "take1.motion"))
	assert.Equal(t, manifest.Float(24), m.Motions[1].FPS)
}

func TestRoot_DryRun(t *testing.T) {
	cmd, out := newTestRoot(t)
	root := writeDataset(t)

	cmd.SetArgs([]string{"--input_dir", root, "--dry-run", "--log-format", "json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "motions:")
	assert.Contains(t, out.String(), "take1.motion")
}

func TestRoot_Report(t *testing.T) {
	cmd, _ := newTestRoot(t)
	root := writeDataset(t)
	testutil.WriteNPZ(t, filepath.Join(root, "broken.npz"), testutil.Poses(3))
	dir := t.TempDir()

	cmd.SetArgs([]string{"-i", root, "-o", filepath.Join(dir, "m.yaml"), "--report", filepath.Join(dir, "report.json"), "--log-format", "json"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "missing_frame_rate")
}

func TestRoot_Strict(t *testing.T) {
	cmd, _ := newTestRoot(t)
	root := t.TempDir()
	testutil.WriteMotion(t, filepath.Join(root, "a-b.npz"), 30, 30)
	testutil.WriteMotion(t, filepath.Join(root, "a b.npz"), 30, 30)
	out := filepath.Join(t.TempDir(), "motions.yaml")

	cmd.SetArgs([]string{"-i", root, "-o", out, "--strict", "--log-format", "json"})
	err := cmd.Execute()
	assert.ErrorIs(t, err, manifest.ErrIdentifierCollision)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_ConfigFile(t *testing.T) {
	cmd, _ := newTestRoot(t)
	root := t.TempDir()
	testutil.WriteMotion(t, filepath.Join(root, "clip.npz"), 30, 30)
	out := filepath.Join(t.TempDir(), "motions.yaml")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("manifest:\n  identifier_extension: .mot\nlogging:\n  format: json\n"), 0644))

	cmd.SetArgs([]string{"--config", cfgPath, "-i", root, "-o", out})
	require.NoError(t, cmd.Execute())

	m, err := manifest.NewLoader().Load(out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(m.Motions[0].File, "clip.mot"))
}

func TestRoot_Errors(t *testing.T) {
	t.Run("missing input_dir", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		cmd.SetArgs([]string{"-o", "x.yaml"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("missing output_file", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		cmd.SetArgs([]string{"-i", t.TempDir(), "--log-format", "json"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("input is not a directory", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		file := testutil.WriteFile(t, filepath.Join(t.TempDir(), "f.npz"), []byte("x"))
		cmd.SetArgs([]string{"-i", file, "-o", filepath.Join(t.TempDir(), "m.yaml"), "--log-format", "json"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("positional args rejected", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		cmd.SetArgs([]string{"-i", t.TempDir(), "-o", "m.yaml", "extra"})
		assert.Error(t, cmd.Execute())
	})
}

func writeValidManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motions.yaml")
	content := `motions:
  - file: /data/walk.motion
    fps: 30.0
    weight: 1.0
    idx: 0
    sub_motions:
      - timings:
          start: 0.0
          end: 3.0
  - file: /data/idle.motion
    fps: 60.0
    weight: 1.0
    idx: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate(t *testing.T) {
	t.Run("valid manifest", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		path := writeValidManifest(t)

		cmd.SetArgs([]string{"validate", path})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "OK (2 motions, 1 with timings, 3.00s total)")
	})

	t.Run("invalid manifest", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("motions:\n  - {file: a, fps: 30, weight: 1, idx: 3}\n"), 0644))

		cmd.SetArgs([]string{"validate", path})
		assert.ErrorIs(t, cmd.Execute(), manifest.ErrIndexGap)
	})

	t.Run("missing file", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		cmd.SetArgs([]string{"validate", "/nope/motions.yaml"})
		assert.ErrorIs(t, cmd.Execute(), manifest.ErrFileNotFound)
	})

	t.Run("requires an argument", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		cmd.SetArgs([]string{"validate"})
		assert.Error(t, cmd.Execute())
	})
}

func TestInspect(t *testing.T) {
	t.Run("renders table", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		cmd.SetArgs([]string{"inspect", writeValidManifest(t)})
		require.NoError(t, cmd.Execute())

		s := out.String()
		assert.Contains(t, s, "/data/walk.motion")
		assert.Contains(t, s, "/data/idle.motion")
		assert.Contains(t, s, "30.0")
		assert.Contains(t, s, "90")
		assert.Contains(t, s, "3.00s")
		assert.Contains(t, s, "2 motions")
	})

	t.Run("empty manifest", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("motions: []\n"), 0644))

		cmd.SetArgs([]string{"inspect", path})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "No motions.")
	})
}

func TestVersionCmd(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "motionscan")
}

func TestRenderTable(t *testing.T) {
	assert.Equal(t, "", renderTable(nil, nil, nil, nil))

	s := renderTable(
		[]string{"A", "B"},
		[][]string{{"1", "x"}, {"2"}},
		[]columnAlignment{alignRight, alignLeft},
		[]string{"", "total"},
	)
	assert.Contains(t, s, "x")
	assert.Contains(t, s, "total")
	assert.Equal(t, 1, strings.Count(s, "╭"))
}

func TestConfigCmd(t *testing.T) {
	t.Run("init writes defaults", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		path := filepath.Join(t.TempDir(), "motionscan.yaml")

		cmd.SetArgs([]string{"config", "init", "--config", path})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Wrote "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "extension: .npz")
		assert.Contains(t, string(data), "ttl: 168h0m0s")
	})

	t.Run("init refuses to overwrite", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scan:\n  sort: false\n"), 0644))

		cmd.SetArgs([]string{"config", "init", "--config", path})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("show prints effective config", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("manifest:\n  identifier_extension: .mot\n"), 0644))

		cmd.SetArgs([]string{"config", "show", "--config", path})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "identifier_extension: .mot")
		assert.Contains(t, out.String(), "poses_key: poses")
	})

	t.Run("editor needs a terminal", func(t *testing.T) {
		if utils.IsTerminal(os.Stdin) {
			t.Skip("stdin is a terminal")
		}
		cmd, _ := newTestRoot(t)
		cmd.SetArgs([]string{"config"})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs a terminal")
	})
}

func TestCacheCmd(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "cache:\n  enabled: true\n  directory: " + cacheDir + "\nlogging:\n  format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	t.Run("stats before any run", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		cmd.SetArgs([]string{"cache", "stats", "--config", cfgPath})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "0 entries")
		assert.NoDirExists(t, cacheDir)
	})

	t.Run("run fills the cache", func(t *testing.T) {
		cmd, _ := newTestRoot(t)
		root := writeDataset(t)
		cmd.SetArgs([]string{"--config", cfgPath, "-i", root, "-o", filepath.Join(t.TempDir(), "m.yaml")})
		require.NoError(t, cmd.Execute())

		cmd, out := newTestRoot(t)
		cmd.SetArgs([]string{"cache", "stats", "--config", cfgPath})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), cacheDir+": 2 entries")
	})

	t.Run("clear", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		cmd.SetArgs([]string{"cache", "clear", "--config", cfgPath})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "removed 2 entries")

		cmd, out = newTestRoot(t)
		cmd.SetArgs([]string{"cache", "stats", "--config", cfgPath})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "0 entries")
	})

	t.Run("clear without a cache", func(t *testing.T) {
		cmd, out := newTestRoot(t)
		other := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(other, []byte("cache:\n  directory: "+filepath.Join(t.TempDir(), "none")+"\n"), 0644))
		cmd.SetArgs([]string{"cache", "clear", "--config", other})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "nothing to clear")
	})
}

func TestRoot_ConfigFileAfterRepeatedConstruction(t *testing.T) {
	for i := 0; i < 3; i++ {
		_ = newRootCmd()
	}
	cmd, _ := newTestRoot(t)
	root := t.TempDir()
	testutil.WriteMotion(t, filepath.Join(root, "clip.npz"), 30, 30)
	out := filepath.Join(t.TempDir(), "motions.yaml")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("manifest:\n  identifier_extension: .mot\nlogging:\n  format: json\n"), 0644))

	cmd.SetArgs([]string{"--config", cfgPath, "-i", root, "-o", out})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, cfgPath, viper.ConfigFileUsed())

	m, err := manifest.NewLoader().Load(out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(m.Motions[0].File, "clip.mot"))
}
