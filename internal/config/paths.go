package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSettingsFilename is the canonical settings file in the working directory.
	DefaultSettingsFilename = "settings.json"

	// DefaultFilePermissions keeps credentials readable by the owner only.
	DefaultFilePermissions = 0o600
)

// homeSettingsPath is the per-user settings file relative to the home directory.
//
//nolint:gochecknoglobals // Fixed path parts, joined per platform.
var homeSettingsPath = []string{".config", "downonspot.json"}

// PathProvider lists the candidate settings files searched when no explicit path is given.
type PathProvider interface {
	Candidates() ([]string, error)
}

// DefaultPaths searches the working directory first, then the user's home directory.
type DefaultPaths struct {
	// HomeDir overrides os.UserHomeDir when set.
	HomeDir func() (string, error)
}

// Candidates implements PathProvider.
func (p DefaultPaths) Candidates() ([]string, error) {
	homeDir := p.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}

	home, err := homeDir()
	if err != nil {
		return nil, newError(KindEnvironment, "resolve home", "", fmt.Errorf("%w: %w", ErrHomeDirNotFound, err))
	}

	if home == "" {
		return nil, newError(KindEnvironment, "resolve home", "", ErrHomeDirNotFound)
	}

	return []string{
		DefaultSettingsFilename,
		filepath.Join(append([]string{home}, homeSettingsPath...)...),
	}, nil
}

// StaticPaths is a fixed candidate list.
type StaticPaths []string

// Candidates implements PathProvider.
func (p StaticPaths) Candidates() ([]string, error) {
	return append([]string(nil), p...), nil
}
