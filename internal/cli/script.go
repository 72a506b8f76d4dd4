package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/brunoga/fieldarray"
	"github.com/brunoga/fieldarray/form"
)

// Script describes a replay: the starting values, the array path and the
// steps to apply.
type Script struct {
	Values map[string]any `yaml:"values" toml:"values"`
	Path   string         `yaml:"path" toml:"path"`
	Steps  []Step         `yaml:"steps" toml:"steps"`
}

// Step is one replayed operation. Only the fields the operation needs are
// read.
type Step struct {
	Op     string `yaml:"op" toml:"op"`
	Index  int    `yaml:"index" toml:"index"`
	A      int    `yaml:"a" toml:"a"`
	B      int    `yaml:"b" toml:"b"`
	From   int    `yaml:"from" toml:"from"`
	To     int    `yaml:"to" toml:"to"`
	Value  any    `yaml:"value" toml:"value"`
	Values []any  `yaml:"values" toml:"values"`
}

// StepResult is what a step produced.
type StepResult struct {
	Op      string              `yaml:"op"`
	Changes []fieldarray.Change `yaml:"changes,omitempty"`
	Keys    []int               `yaml:"keys"`
}

// Report is the outcome of a replay.
type Report struct {
	Path   string         `yaml:"path"`
	Steps  []StepResult   `yaml:"steps"`
	Values map[string]any `yaml:"values"`
}

// LoadScript reads a script file. The format is picked from the extension:
// .toml is TOML, anything else (.yaml, .yml, .json) is parsed as YAML.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data, filepath.Ext(path))
}

// ParseScript decodes a script in the format named by ext.
func ParseScript(data []byte, ext string) (*Script, error) {
	var s Script
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse TOML script: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML script: %w", err)
		}
	}
	if s.Path == "" {
		return nil, fmt.Errorf("script has no path")
	}
	return &s, nil
}

// Run replays s against a fresh form and returns what every step produced.
func Run(s *Script, logger *zap.Logger, strategy fieldarray.CloneStrategy, devMode bool) (*Report, error) {
	f := form.New(
		form.WithInitialValues(s.Values),
		form.WithLogger(logger),
		form.WithCloneStrategy(strategy),
	)
	c := fieldarray.Use(f, fieldarray.Path(s.Path),
		fieldarray.WithLogger(logger),
		fieldarray.WithCloneStrategy(strategy),
		fieldarray.WithDevMode(devMode))
	defer c.Dispose()

	var batch []fieldarray.Change
	cancel := f.OnChange(func(changes []fieldarray.Change) {
		batch = append(batch, changes...)
	})
	defer cancel()

	report := &Report{Path: s.Path}
	for i, step := range s.Steps {
		batch = nil
		if err := apply(f, c, step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		report.Steps = append(report.Steps, StepResult{
			Op:      step.Op,
			Changes: batch,
			Keys:    entryKeys(c),
		})
	}

	f.Flush()
	report.Values = f.Values()
	return report, nil
}

func apply(f *form.Form, c *fieldarray.Controller, step Step) error {
	switch step.Op {
	case "push":
		c.Push(step.Value)
	case "prepend":
		c.Prepend(step.Value)
	case "insert":
		c.Insert(step.Index, step.Value)
	case "remove":
		c.Remove(step.Index)
	case "swap":
		c.Swap(step.A, step.B)
	case "move":
		c.Move(step.From, step.To)
	case "update":
		c.Update(step.Index, step.Value)
	case "replace":
		c.Replace(step.Values)
	case "set":
		// Writes the array behind the controller's back.
		f.SetValue(c.Path(), step.Values)
	case "flush":
		f.Flush()
	case "reset":
		f.Reset()
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func entryKeys(c *fieldarray.Controller) []int {
	keys := make([]int, 0, c.Len())
	for _, e := range c.Entries() {
		keys = append(keys, e.Key())
	}
	return keys
}
