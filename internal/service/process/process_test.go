package process

import (
	"errors"
	"testing"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.executable }

// TestFinder_Find checks name matching and exclusion of the current process.
func TestFinder_Find(t *testing.T) {
	t.Parallel()

	f := &Finder{
		list: func() ([]ps.Process, error) {
			return []ps.Process{
				fakeProcess{pid: 10, executable: "bash"},
				fakeProcess{pid: 11, executable: "down_on_spot"},
				fakeProcess{pid: 12, executable: "DownOnSpot.EXE"},
				fakeProcess{pid: 13, executable: "down_on_spot"},
			}, nil
		},
		selfPID: 13,
	}

	found, err := f.FindClient()
	require.NoError(t, err)
	require.Equal(t, []Process{
		{PID: 11, Executable: "down_on_spot"},
		{PID: 12, Executable: "DownOnSpot.EXE"},
	}, found)

	found, err = f.Find("zsh")
	require.NoError(t, err)
	require.Empty(t, found)
}

// TestFinder_ListError ensures process table failures are propagated.
func TestFinder_ListError(t *testing.T) {
	t.Parallel()

	f := &Finder{
		list: func() ([]ps.Process, error) {
			return nil, errors.New("permission denied")
		},
	}

	_, err := f.FindClient()
	require.Error(t, err)
}

// TestNewFinder runs against the real process table.
func TestNewFinder(t *testing.T) {
	t.Parallel()

	_, err := NewFinder().Find("definitely-not-running-binary")
	require.NoError(t, err)
}
