package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/downonspot-settings/internal/config"
	"github.com/oshokin/downonspot-settings/internal/logger"
	"github.com/oshokin/downonspot-settings/internal/service/process"
)

// Output formats accepted by Show.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// secretMask replaces non-empty secrets in Show output.
const secretMask = "********"

var (
	// ErrSettingsExist is returned by Init when the target file exists and Force is not set.
	ErrSettingsExist = errors.New("settings file already exists, use --force to overwrite")
	// errUnknownFormat is returned for an unsupported Show output format.
	errUnknownFormat = errors.New("unknown output format")
)

// ClientFinder reports running client processes.
type ClientFinder interface {
	FindClient() ([]process.Process, error)
}

// InitOptions configures Init.
type InitOptions struct {
	// ConfigPath is the file to write, settings.json when empty.
	ConfigPath string
	// Username is the account login.
	Username string
	// Password is the account password.
	Password string
	// ClientID is the API client ID.
	ClientID string
	// ClientSecret is the API client secret.
	ClientSecret string
	// RefreshUISeconds is the UI refresh interval; config.DefaultRefreshUISeconds when nil.
	RefreshUISeconds *uint64
	// Force allows overwriting an existing file.
	Force bool
	// Finder detects a running client; the OS process table is used when nil.
	Finder ClientFinder
}

// ShowOptions configures Show.
type ShowOptions struct {
	// ConfigPath is an explicit settings file; fallback locations are searched when empty.
	ConfigPath string
	// Paths overrides the fallback locations.
	Paths config.PathProvider
	// Format is FormatJSON or FormatYAML.
	Format string
	// Reveal prints secrets instead of masking them.
	Reveal bool
	// Output receives the rendered settings.
	Output io.Writer
}

// PathsOptions configures Paths.
type PathsOptions struct {
	// ConfigPath is an explicit settings file; fallback locations are listed when empty.
	ConfigPath string
	// Paths overrides the fallback locations.
	Paths config.PathProvider
	// Output receives the report.
	Output io.Writer
}

// Init creates a settings file from credentials and default values.
func Init(ctx context.Context, opts *InitOptions) error {
	ctx = logger.WithName(ctx, "init")

	store := config.NewStore(config.WithCanonicalPath(opts.ConfigPath))
	ctx = logger.WithKV(ctx, "path", store.CanonicalPath())

	if !opts.Force {
		if _, err := os.Stat(store.CanonicalPath()); err == nil {
			return ErrSettingsExist
		}
	}

	warnIfClientRunning(ctx, opts.Finder)

	settings := config.New(opts.Username, opts.Password, opts.ClientID, opts.ClientSecret)
	if opts.RefreshUISeconds != nil {
		settings.RefreshUISeconds = *opts.RefreshUISeconds
	}

	if err := store.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	logger.InfoKV(ctx, "Settings saved", "refresh_ui_seconds", settings.RefreshUISeconds)

	return nil
}

// Show loads settings and renders them to opts.Output.
func Show(ctx context.Context, opts *ShowOptions) error {
	ctx = logger.WithName(ctx, "show")

	store := config.NewStore(config.WithPathProvider(opts.Paths))

	settings, path, err := store.LoadWithPath(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.DebugKV(ctx, "Settings loaded", "path", path)

	if !opts.Reveal {
		settings = masked(settings)
	}

	data, err := render(settings, opts.Format)
	if err != nil {
		return err
	}

	if _, err = opts.Output.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// Paths writes the fallback candidates and the path a load would open.
func Paths(ctx context.Context, opts *PathsOptions) error {
	ctx = logger.WithName(ctx, "paths")

	store := config.NewStore(config.WithPathProvider(opts.Paths))

	candidates, resolved, err := store.Explain(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("explain settings path: %w", err)
	}

	if opts.ConfigPath != "" {
		logger.Debug(ctx, "Explicit path given, fallback search skipped")
	}

	var sb strings.Builder

	for _, candidate := range candidates {
		mark := " "
		if candidate.Exists {
			mark = "x"
		}

		fmt.Fprintf(&sb, "[%s] %s\n", mark, candidate.Path)
	}

	fmt.Fprintf(&sb, "resolved: %s\n", resolved)

	if _, err = io.WriteString(opts.Output, sb.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// warnIfClientRunning logs a warning when a client process may rewrite the file.
func warnIfClientRunning(ctx context.Context, finder ClientFinder) {
	if finder == nil {
		finder = process.NewFinder()
	}

	running, err := finder.FindClient()
	if err != nil {
		logger.WarnKV(ctx, "Unable to check for a running client", "error", err)

		return
	}

	for _, p := range running {
		logger.WarnKV(ctx, "Client is running and may overwrite settings on exit",
			"pid", p.PID, "executable", p.Executable)
	}
}

// masked returns a copy of settings with secrets hidden.
func masked(settings *config.Settings) *config.Settings {
	out := settings.Clone()

	if out.Password != "" {
		out.Password = secretMask
	}

	if out.ClientSecret != "" {
		out.ClientSecret = secretMask
	}

	return out
}

// render encodes settings in the requested format.
func render(settings *config.Settings, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}

		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
