package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/domino14/pylos/eval"
)

//go:embed presets.yaml
var defaultPresets []byte

const (
	RemovalMobility = "mobility"
	RemovalSearch   = "search"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named player configuration.
type Preset struct {
	Name     string       `yaml:"-"`
	Depth    int          `yaml:"depth"`
	Contempt float64      `yaml:"contempt"`
	TT       bool         `yaml:"tt"`
	Removal  string       `yaml:"removal"`
	Random   bool         `yaml:"random"`
	Weights  eval.Weights `yaml:"weights"`
}

type presetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

func parsePresets(data []byte) (map[string]Preset, error) {
	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	for name, p := range pf.Presets {
		p.Name = name
		if p.Removal == "" {
			p.Removal = RemovalMobility
		}
		if p.Removal != RemovalMobility && p.Removal != RemovalSearch {
			return nil, fmt.Errorf("preset %s: bad removal policy %q", name, p.Removal)
		}
		if !p.Random && p.Depth < 1 {
			return nil, fmt.Errorf("preset %s: depth must be at least 1", name)
		}
		pf.Presets[name] = p
	}
	return pf.Presets, nil
}

// Presets returns the built-in presets, with any presets from
// presets-path layered on top.
func (c *Config) Presets() (map[string]Preset, error) {
	presets, err := parsePresets(defaultPresets)
	if err != nil {
		return nil, err
	}
	path := c.GetString(ConfigPresetsPath)
	if path == "" {
		return presets, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	extra, err := parsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for k, v := range extra {
		presets[k] = v
	}
	return presets, nil
}

// PresetNames lists the available presets in sorted order.
func (c *Config) PresetNames() []string {
	presets, err := c.Presets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Preset looks up a preset by name and applies the search overrides that
// were set explicitly on the command line or in the environment.
func (c *Config) Preset(name string) (Preset, error) {
	presets, err := c.Presets()
	if err != nil {
		return Preset{}, err
	}
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	if p.Random {
		return p, nil
	}
	if d := c.GetInt(ConfigSearchDepth); d > 0 {
		p.Depth = d
	}
	if c.IsSet(ConfigContempt) {
		p.Contempt = c.GetFloat64(ConfigContempt)
	}
	if c.IsSet(ConfigTTEnabled) {
		p.TT = c.GetBool(ConfigTTEnabled)
	}
	switch r := c.GetString(ConfigRemovalPolicy); r {
	case "":
	case RemovalMobility, RemovalSearch:
		p.Removal = r
	default:
		return Preset{}, fmt.Errorf("bad removal policy %q", r)
	}
	return p, nil
}
