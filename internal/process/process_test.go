package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	table := Snapshot()
	assert.NotNil(t, table)
	assert.NotEmpty(t, table.procs, "the test binary itself is a Go process")
	assert.False(t, table.Matches(0, "nofan"))
	assert.False(t, table.Matches(-1, "nofan"))
}

func TestTable_Matches(t *testing.T) {
	table := &Table{procs: []Process{
		{PID: 10, Exec: "nofan", Path: "/usr/local/bin/nofan"},
		{PID: 11, Exec: "", Path: `C:\bin\NoFan.exe`},
		{PID: 12, Exec: "other", Path: "/usr/bin/other"},
	}}

	assert.True(t, table.Matches(10, "nofan"))
	assert.True(t, table.Matches(11, "nofan"))
	assert.True(t, table.Matches(10, "nofan.exe"))
	assert.True(t, table.Matches(11, "NOFAN.EXE"))
	assert.False(t, table.Matches(12, "nofan"))
	assert.False(t, table.Matches(99, "nofan"))
}

func TestProcess_Name(t *testing.T) {
	assert.Equal(t, "nofan", Process{Exec: "nofan.exe"}.Name())
	assert.Equal(t, "nofan", Process{Path: "/opt/NoFan"}.Name())
}
