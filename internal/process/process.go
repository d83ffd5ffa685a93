// Package process inspects running Go processes.
package process

import (
	"path/filepath"
	"strings"

	"github.com/google/gops/goprocess"
)

// Process is a running Go process.
type Process struct {
	PID  int
	Exec string
	Path string
}

// Name returns the executable base name without extension, lowercased.
func (p Process) Name() string {
	name := p.Exec
	if name == "" {
		name = filepath.Base(p.Path)
	}

	return strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
}

// Table is a snapshot of the running Go processes.
type Table struct {
	procs []Process
}

// Snapshot lists the running Go processes.
func Snapshot() *Table {
	t := &Table{}

	for _, proc := range goprocess.FindAll() {
		t.procs = append(t.procs, Process{
			PID:  proc.PID,
			Exec: proc.Exec,
			Path: proc.Path,
		})
	}

	return t
}

// Matches reports whether pid is running and its executable name contains
// name. Case and extensions are ignored on both sides.
func (t *Table) Matches(pid int, name string) bool {
	proc, ok := t.find(pid)
	if !ok {
		return false
	}

	return strings.Contains(proc.Name(), Process{Exec: name}.Name())
}

func (t *Table) find(pid int) (Process, bool) {
	if pid <= 0 {
		return Process{}, false
	}

	for _, proc := range t.procs {
		if proc.PID == pid {
			return proc, true
		}
	}

	return Process{}, false
}

// Alive reports whether a Go process with the given pid and executable name
// is running.
func Alive(pid int, name string) bool {
	return Snapshot().Matches(pid, name)
}
