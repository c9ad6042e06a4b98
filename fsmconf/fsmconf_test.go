package fsmconf_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/enetx/fsm/v2"
	"github.com/enetx/fsm/v2/fsmconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerYAML = `
name: player
initial: RUNNING
states: [RUNNING, PAUSED, CONFIGURING, RESET, ENDED]
rules:
  - from: RUNNING
    to: [PAUSED, ENDED]
  - from: PAUSED
    to: [RUNNING, RESET, CONFIGURING]
  - from: ENDED
    to: [RESET]
  - from: CONFIGURING
    to: [PAUSED]
  - from: RESET
    to: [PAUSED, RESET]
`

const playerTOML = `
name = "player"
initial = "RUNNING"
states = ["RUNNING", "PAUSED", "CONFIGURING", "RESET", "ENDED"]

[[rules]]
from = "RUNNING"
to = ["PAUSED", "ENDED"]

[[rules]]
from = "PAUSED"
to = ["RUNNING", "RESET", "CONFIGURING"]

[[rules]]
from = "ENDED"
to = ["RESET"]

[[rules]]
from = "CONFIGURING"
to = ["PAUSED"]

[[rules]]
from = "RESET"
to = ["PAUSED", "RESET"]
`

const playerJSON = `{
  "name": "player",
  "initial": "RUNNING",
  "states": ["RUNNING", "PAUSED", "CONFIGURING", "RESET", "ENDED"],
  "rules": [
    {"from": "RUNNING", "to": ["PAUSED", "ENDED"]},
    {"from": "PAUSED", "to": ["RUNNING", "RESET", "CONFIGURING"]},
    {"from": "ENDED", "to": ["RESET"]},
    {"from": "CONFIGURING", "to": ["PAUSED"]},
    {"from": "RESET", "to": ["PAUSED", "RESET"]}
  ]
}`

func TestParse_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format fsmconf.Format
	}{
		{"yaml", playerYAML, fsmconf.FormatYAML},
		{"toml", playerTOML, fsmconf.FormatTOML},
		{"json", playerJSON, fsmconf.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def, err := fsmconf.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, "player", def.Name)
			assert.Equal(t, "RUNNING", def.Initial)
			assert.Len(t, def.States, 5)
			require.Len(t, def.Rules, 5)
			assert.Equal(t, []string{"PAUSED", "ENDED"}, def.Rules[0].To)

			m, err := def.Machine()
			require.NoError(t, err)

			require.NoError(t, m.TransitionTo("PAUSED"))
			assert.True(t, fsm.IsIllegalTransition(m.TransitionTo("ENDED")))
			require.NoError(t, m.TransitionTo("CONFIGURING"))
			assert.True(t, fsm.IsIllegalTransition(m.TransitionTo("RUNNING")))
			assert.Equal(t, fsm.State("CONFIGURING"), m.Current())
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := fsmconf.Parse([]byte("states: [A]\ntransitions: []\n"), fsmconf.FormatYAML)
	require.Error(t, err)

	_, err = fsmconf.Parse([]byte(`{"states": ["A"], "extra": true}`), fsmconf.FormatJSON)
	require.Error(t, err)

	_, err = fsmconf.Parse([]byte("states = [\"A\"]\nextra = 1\n"), fsmconf.FormatTOML)
	require.Error(t, err)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := fsmconf.Parse([]byte("{}"), "xml")
	require.ErrorIs(t, err, fsmconf.ErrUnsupportedFormat)
}

func TestDefinition_ValidationErrors(t *testing.T) {
	t.Parallel()

	unknown := &fsmconf.Definition{
		Name:   "broken",
		States: []string{"A", "B"},
		Rules:  []fsmconf.RuleDef{{From: "A", To: []string{"C"}}},
	}

	_, err := unknown.Table()
	require.Error(t, err)
	assert.True(t, fsm.IsUnknownState(err))
	assert.Contains(t, err.Error(), `definition "broken"`)

	var unknownErr *fsm.ErrUnknownState[fsm.State]
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, fsm.State("C"), unknownErr.State)

	duplicate := &fsmconf.Definition{
		States: []string{"A", "B"},
		Rules: []fsmconf.RuleDef{
			{From: "A", To: []string{"B"}},
			{From: "A", To: []string{"A"}},
		},
	}

	_, err = duplicate.Table()
	assert.True(t, fsm.IsDuplicateRule(err))
}

func TestDefinition_Machine(t *testing.T) {
	t.Parallel()

	def := &fsmconf.Definition{States: []string{"A"}}

	_, err := def.Machine()
	require.ErrorIs(t, err, fsmconf.ErrInitialStateRequired)

	def.Initial = "Z"
	_, err = def.Machine()
	assert.True(t, fsm.IsUnknownState(err))

	def.Initial = "A"
	m, err := def.Machine()
	require.NoError(t, err)
	assert.Equal(t, fsm.State("A"), m.Current())
	assert.True(t, m.Table().IsTerminal("A"))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "player.yml")
	require.NoError(t, os.WriteFile(path, []byte(playerYAML), 0o600))

	def, err := fsmconf.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "player", def.Name)

	_, err = fsmconf.LoadFile(filepath.Join(dir, "player.ini"))
	require.ErrorIs(t, err, fsmconf.ErrUnsupportedFormat)

	_, err = fsmconf.LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"machines/player.toml": {Data: []byte(playerTOML)},
	}

	def, err := fsmconf.LoadFS(fsys, "machines/player.toml")
	require.NoError(t, err)

	table, err := def.Table()
	require.NoError(t, err)
	assert.True(t, table.IsLegal("RESET", "RESET"))
	assert.False(t, table.IsLegal("CONFIGURING", "RUNNING"))
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected fsmconf.Format
	}{
		{"a.yaml", fsmconf.FormatYAML},
		{"a.YML", fsmconf.FormatYAML},
		{"dir/a.toml", fsmconf.FormatTOML},
		{"a.json", fsmconf.FormatJSON},
	}

	for _, tt := range tests {
		format, err := fsmconf.FormatFromPath(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, format)
	}
}
