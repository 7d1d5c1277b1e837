package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// Store saves and loads Settings.
// It holds no mutable state, so concurrent use is safe; concurrent saves are last-writer-wins.
type Store struct {
	// paths supplies the fallback candidates for Load.
	paths PathProvider
	// canonicalPath is where Save writes.
	canonicalPath string
}

// Option configures a Store.
type Option func(*Store)

// WithPathProvider replaces the default fallback candidates.
func WithPathProvider(provider PathProvider) Option {
	return func(s *Store) {
		if provider != nil {
			s.paths = provider
		}
	}
}

// WithCanonicalPath changes the file Save writes to.
func WithCanonicalPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.canonicalPath = path
		}
	}
}

// Candidate is a fallback location together with whether it exists.
type Candidate struct {
	// Path is the candidate file path.
	Path string
	// Exists reports whether the file was found.
	Exists bool
}

// NewStore creates a store writing to settings.json and searching the default locations.
func NewStore(opts ...Option) *Store {
	store := &Store{
		paths:         DefaultPaths{},
		canonicalPath: DefaultSettingsFilename,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Save is a shortcut for NewStore().Save.
func Save(ctx context.Context, settings *Settings) error {
	return NewStore().Save(ctx, settings)
}

// Load is a shortcut for NewStore().Load.
func Load(ctx context.Context, pathHint string) (*Settings, error) {
	return NewStore().Load(ctx, pathHint)
}

// CanonicalPath returns the file Save writes to.
func (s *Store) CanonicalPath() string {
	return s.canonicalPath
}

// Save writes settings as indented JSON to the canonical path, replacing any previous content.
func (s *Store) Save(ctx context.Context, settings *Settings) error {
	if settings == nil {
		return ErrSettingsNotSet
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return newError(KindSerialization, "encode", s.canonicalPath, err)
	}

	data = append(data, '\n')

	if err = os.WriteFile(filepath.Clean(s.canonicalPath), data, DefaultFilePermissions); err != nil {
		return newError(KindFilesystem, "write", s.canonicalPath, err)
	}

	return nil
}

// Load reads settings from pathHint, or from the first existing fallback
// candidate when pathHint is empty.
func (s *Store) Load(ctx context.Context, pathHint string) (*Settings, error) {
	settings, _, err := s.LoadWithPath(ctx, pathHint)

	return settings, err
}

// LoadWithPath is Load that also returns the path it resolved and read.
// The path is empty when resolution itself failed.
func (s *Store) LoadWithPath(ctx context.Context, pathHint string) (*Settings, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	path, err := s.Resolve(pathHint)
	if err != nil {
		return nil, "", err
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, path, newError(KindFilesystem, "read", path, err)
	}

	settings := new(Settings)
	if err = json.Unmarshal(contents, settings); err != nil {
		return nil, path, newError(KindSerialization, "decode", path, err)
	}

	return settings, path, nil
}

// Resolve returns the path Load would open.
// A non-empty pathHint is returned as is. Otherwise the first existing
// candidate wins, and the last candidate is returned when none exists.
func (s *Store) Resolve(pathHint string) (string, error) {
	if pathHint != "" {
		return pathHint, nil
	}

	candidates, resolved, err := s.Explain(pathHint)
	if err != nil {
		return "", err
	}

	if len(candidates) == 0 {
		return "", newError(KindEnvironment, "resolve", "", errNoCandidates)
	}

	return resolved, nil
}

// Explain reports every fallback candidate with its existence and the path
// Load would open. For a non-empty pathHint no candidates are checked.
func (s *Store) Explain(pathHint string) ([]Candidate, string, error) {
	if pathHint != "" {
		return nil, pathHint, nil
	}

	paths, err := s.paths.Candidates()
	if err != nil {
		return nil, "", err
	}

	var (
		candidates = make([]Candidate, 0, len(paths))
		resolved   string
	)

	for _, path := range paths {
		exists := fileExists(path)
		if exists && resolved == "" {
			resolved = path
		}

		candidates = append(candidates, Candidate{
			Path:   path,
			Exists: exists,
		})
	}

	if resolved == "" && len(paths) > 0 {
		resolved = paths[len(paths)-1]
	}

	return candidates, resolved, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
