// Package fsmconf decodes declarative transition table definitions from YAML,
// TOML or JSON documents and builds the corresponding fsm tables and machines.
//
// A definition lists the closed state enumeration, an optional initial state and
// one rule per origin:
//
//	name: player
//	initial: RUNNING
//	states: [RUNNING, PAUSED, CONFIGURING, RESET, ENDED]
//	rules:
//	  - from: RUNNING
//	    to: [PAUSED, ENDED]
//	  - from: PAUSED
//	    to: [RUNNING, RESET, CONFIGURING]
package fsmconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/enetx/fsm/v2"
	"github.com/enetx/g"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for a format or file extension that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported definition format")
	// ErrInitialStateRequired is returned by Definition.Machine when no initial state is declared.
	ErrInitialStateRequired = errors.New("initial state is required")
)

// Definition is the decoded form of a transition table document.
type Definition struct {
	Name    string    `json:"name"    toml:"name"    yaml:"name"`
	Initial string    `json:"initial" toml:"initial" yaml:"initial"`
	States  []string  `json:"states"  toml:"states"  yaml:"states"`
	Rules   []RuleDef `json:"rules"   toml:"rules"   yaml:"rules"`
}

// RuleDef declares the destinations allowed from one origin state.
type RuleDef struct {
	From string   `json:"from" toml:"from" yaml:"from"`
	To   []string `json:"to"   toml:"to"   yaml:"to"`
}

// FormatFromPath picks the format matching a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Parse decodes a definition document. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Definition, error) {
	var (
		def Definition
		err error
	)

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&def)
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&def)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s definition: %w", format, err)
	}

	return &def, nil
}

// LoadFile reads and decodes a definition file; the format follows its extension.
func LoadFile(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	return Parse(data, format)
}

// LoadFS is like LoadFile but reads from fsys, such as an embed.FS.
func LoadFS(fsys fs.FS, name string) (*Definition, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	return Parse(data, format)
}

// Table builds the transition table the definition declares.
// Validation failures keep their fsm error kind, so fsm.IsUnknownState and
// fsm.IsDuplicateRule work on the returned error.
func (d *Definition) Table() (*fsm.Table[fsm.State], error) {
	states := make(g.Slice[fsm.State], 0, len(d.States))
	for _, s := range d.States {
		states.Push(fsm.State(s))
	}

	rules := make(g.Slice[fsm.Rule[fsm.State]], 0, len(d.Rules))
	for _, r := range d.Rules {
		to := make(g.Slice[fsm.State], 0, len(r.To))
		for _, s := range r.To {
			to.Push(fsm.State(s))
		}

		rules.Push(fsm.Rule[fsm.State]{From: fsm.State(r.From), To: to})
	}

	table, err := fsm.NewTable(states, rules...)
	if err != nil {
		return nil, d.wrap(err)
	}

	return table, nil
}

// Machine builds the table and a machine seeded with the declared initial state.
func (d *Definition) Machine() (*fsm.Machine[fsm.State], error) {
	if d.Initial == "" {
		return nil, d.wrap(ErrInitialStateRequired)
	}

	table, err := d.Table()
	if err != nil {
		return nil, err
	}

	m, err := fsm.New(table, fsm.State(d.Initial))
	if err != nil {
		return nil, d.wrap(err)
	}

	return m, nil
}

func (d *Definition) wrap(err error) error {
	if d.Name == "" {
		return fmt.Errorf("definition: %w", err)
	}

	return fmt.Errorf("definition %q: %w", d.Name, err)
}
