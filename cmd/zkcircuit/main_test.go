package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func resetFlags() {
	fConfig, fBinary, fOutDir, fScheme = "", "", "", ""
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(resetFlags)

	t.Setenv("ZOKRATES_ROOT", "/opt/zokrates")
	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/opt/zokrates", "zokrates"), cfg.Binary)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("binary: /usr/local/bin/zokrates\nscheme: g16\n"), 0o644))
	fConfig = path
	fScheme = "pghr13"
	cfg, err = loadConfig()
	require.NoError(t, err)
	require.Equal(t, "/usr/local/bin/zokrates", cfg.Binary)
	require.Equal(t, "pghr13", cfg.Scheme)

	resetFlags()
	t.Setenv("ZOKRATES_ROOT", "")
	_, err = loadConfig()
	require.Error(t, err)
}

func TestSanitizeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proof.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":[01,0x0f],"b":2,}`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"sanitize", "-q", path})
	require.NoError(t, rootCmd.Execute())
	require.Equal(t, `{"a":["01","0x0f"],"b":2}`, out.String())
}
