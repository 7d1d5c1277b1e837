package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// ClientExecutables are the executable names of the DownOnSpot client.
//
//nolint:gochecknoglobals // Read-only list of known binary names.
var ClientExecutables = []string{"down_on_spot", "down_on_spot.exe", "downonspot", "downonspot.exe"}

// Process describes a running process.
type Process struct {
	// PID is the process identifier.
	PID int
	// Executable is the binary name as reported by the OS.
	Executable string
}

// Finder looks up running processes by executable name.
type Finder struct {
	// list returns the current process table.
	list func() ([]ps.Process, error)
	// selfPID is excluded from results.
	selfPID int
}

// NewFinder returns a Finder backed by the OS process table.
func NewFinder() *Finder {
	return &Finder{
		list:    ps.Processes,
		selfPID: os.Getpid(),
	}
}

// Find returns running processes whose executable matches one of names.
// Matching ignores case and any directory part.
func (f *Finder) Find(names ...string) ([]Process, error) {
	processList, err := f.list()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[normalize(name)] = struct{}{}
	}

	var found []Process

	for _, p := range processList {
		if p.Pid() == f.selfPID {
			continue
		}

		if _, ok := wanted[normalize(p.Executable())]; !ok {
			continue
		}

		found = append(found, Process{
			PID:        p.Pid(),
			Executable: p.Executable(),
		})
	}

	return found, nil
}

// FindClient is Find for ClientExecutables.
func (f *Finder) FindClient() ([]Process, error) {
	return f.Find(ClientExecutables...)
}

func normalize(name string) string {
	return strings.ToLower(filepath.Base(name))
}
