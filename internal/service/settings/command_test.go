package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/downonspot-settings/internal/config"
	"github.com/oshokin/downonspot-settings/internal/service/process"
)

type fakeFinder struct {
	running []process.Process
	err     error
	calls   int
}

func (f *fakeFinder) FindClient() ([]process.Process, error) {
	f.calls++

	return f.running, f.err
}

// initSettings writes a settings file through Init and returns its path.
func initSettings(t *testing.T, dir, username string) string {
	t.Helper()

	path := filepath.Join(dir, username+".json")

	err := Init(context.Background(), &InitOptions{
		ConfigPath:   path,
		Username:     username,
		Password:     "hunter2",
		ClientID:     "client-" + username,
		ClientSecret: "s3cr3t",
		Finder:       new(fakeFinder),
	})
	require.NoError(t, err)

	return path
}

// TestInit writes a file and reads it back through the store.
func TestInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	finder := &fakeFinder{running: []process.Process{{PID: 42, Executable: "down_on_spot"}}}
	refresh := uint64(5)

	opts := &InitOptions{
		ConfigPath:       path,
		Username:         "user",
		Password:         "pass",
		ClientID:         "id",
		ClientSecret:     "secret",
		RefreshUISeconds: &refresh,
		Finder:           finder,
	}

	require.NoError(t, Init(context.Background(), opts))
	require.Equal(t, 1, finder.calls)

	got, err := config.NewStore().Load(context.Background(), path)
	require.NoError(t, err)

	want := config.New("user", "pass", "id", "secret")
	want.RefreshUISeconds = 5
	require.Equal(t, want, got)

	// Existing file is kept unless forced.
	opts.Username = "other"
	require.ErrorIs(t, Init(context.Background(), opts), ErrSettingsExist)

	opts.Force = true
	finder.err = errors.New("no access")
	require.NoError(t, Init(context.Background(), opts))

	got, err = config.NewStore().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "other", got.Username)
}

// TestInit_RefreshUISeconds checks the default for unset intervals and that zero is kept.
func TestInit_RefreshUISeconds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zero := uint64(0)

	cases := map[string]struct {
		refresh *uint64
		want    uint64
	}{
		"unset.json": {refresh: nil, want: config.DefaultRefreshUISeconds},
		"zero.json":  {refresh: &zero, want: 0},
	}

	for name, tc := range cases {
		path := filepath.Join(dir, name)

		err := Init(context.Background(), &InitOptions{
			ConfigPath:       path,
			Username:         "u",
			RefreshUISeconds: tc.refresh,
			Finder:           new(fakeFinder),
		})
		require.NoError(t, err, name)

		got, err := config.NewStore().Load(context.Background(), path)
		require.NoError(t, err, name)
		require.Equal(t, tc.want, got.RefreshUISeconds, name)
	}
}

// TestInit_WriteError ensures store failures are returned.
func TestInit_WriteError(t *testing.T) {
	t.Parallel()

	err := Init(context.Background(), &InitOptions{
		ConfigPath: filepath.Join(t.TempDir(), "missing", "settings.json"),
		Finder:     new(fakeFinder),
	})
	require.ErrorIs(t, err, config.ErrFilesystem)
}

// countingPaths records how often the fallback candidates are listed.
type countingPaths struct {
	paths config.StaticPaths
	calls int
}

func (c *countingPaths) Candidates() ([]string, error) {
	c.calls++

	return c.paths.Candidates()
}

// TestShow_SearchesOnce ensures the fallback locations are listed a single time per Show.
func TestShow_SearchesOnce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := &countingPaths{paths: config.StaticPaths{filepath.Join(dir, "absent.json"), initSettings(t, dir, "once")}}

	var out bytes.Buffer

	require.NoError(t, Show(context.Background(), &ShowOptions{Paths: paths, Output: &out}))
	require.Equal(t, 1, paths.calls)
	require.Contains(t, out.String(), `"username": "once"`)
}

// TestShow_JSONMasked prints the first existing candidate with secrets hidden.
func TestShow_JSONMasked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := initSettings(t, dir, "first")
	second := initSettings(t, dir, "second")

	var out bytes.Buffer

	err := Show(context.Background(), &ShowOptions{
		Paths:  config.StaticPaths{first, second},
		Output: &out,
	})
	require.NoError(t, err)

	var got config.Settings
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, "first", got.Username)
	require.Equal(t, secretMask, got.Password)
	require.Equal(t, secretMask, got.ClientSecret)
	require.Equal(t, "client-first", got.ClientID)
}

// TestShow_YAMLRevealed prints an explicit file as YAML with secrets.
func TestShow_YAMLRevealed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := initSettings(t, dir, "yaml")

	var out bytes.Buffer

	err := Show(context.Background(), &ShowOptions{
		ConfigPath: path,
		Paths:      config.StaticPaths{filepath.Join(dir, "ignored.json")},
		Format:     FormatYAML,
		Reveal:     true,
		Output:     &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "client_secret: s3cr3t")
	require.Contains(t, out.String(), "refresh_ui_seconds: 1")

	var got config.Settings
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Equal(t, "hunter2", got.Password)
	require.Equal(t, config.New("yaml", "hunter2", "client-yaml", "s3cr3t").Downloader, got.Downloader)
}

// TestShow_Errors covers missing files and unknown formats.
func TestShow_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := Show(context.Background(), &ShowOptions{
		Paths:  config.StaticPaths{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")},
		Output: new(bytes.Buffer),
	})
	require.ErrorIs(t, err, fs.ErrNotExist)

	err = Show(context.Background(), &ShowOptions{
		ConfigPath: initSettings(t, dir, "fmt"),
		Format:     "toml",
		Output:     new(bytes.Buffer),
	})
	require.ErrorIs(t, err, errUnknownFormat)
}

// TestPaths lists candidates and the resolved path.
func TestPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	present := initSettings(t, dir, "present")
	last := filepath.Join(dir, "last.json")

	var out bytes.Buffer

	err := Paths(context.Background(), &PathsOptions{
		Paths:  config.StaticPaths{missing, present, last},
		Output: &out,
	})
	require.NoError(t, err)
	require.Equal(t,
		"[ ] "+missing+"\n"+
			"[x] "+present+"\n"+
			"[ ] "+last+"\n"+
			"resolved: "+present+"\n",
		out.String())

	out.Reset()

	err = Paths(context.Background(), &PathsOptions{
		ConfigPath: "custom.json",
		Paths:      config.StaticPaths{present},
		Output:     &out,
	})
	require.NoError(t, err)
	require.Equal(t, "resolved: custom.json\n", out.String())
}
