package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brunoga/fieldarray"
)

const yamlScript = `
path: arr
values:
  arr:
    - n: a
steps:
  - op: push
    value: {n: b}
  - op: set
    values: [x, y, z]
  - op: flush
  - op: move
    from: 0
    to: 2
`

const tomlScript = `
path = "items"

[values]
items = ["a", "b", "c"]

[[steps]]
op = "remove"
index = 1

[[steps]]
op = "insert"
index = 1
value = "x"
`

func TestParseScript_YAML(t *testing.T) {
	s, err := ParseScript([]byte(yamlScript), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, "arr", s.Path)
	require.Len(t, s.Steps, 4)
	assert.Equal(t, "push", s.Steps[0].Op)
	assert.Equal(t, map[string]any{"n": "b"}, s.Steps[0].Value)
	assert.Equal(t, []any{"x", "y", "z"}, s.Steps[1].Values)
	assert.Equal(t, 2, s.Steps[3].To)
}

func TestParseScript_JSONIsReadAsYAML(t *testing.T) {
	s, err := ParseScript([]byte(`{"path": "arr", "steps": [{"op": "push", "value": 1}]}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, "arr", s.Path)
	assert.Equal(t, 1, s.Steps[0].Value)
}

func TestParseScript_TOML(t *testing.T) {
	s, err := ParseScript([]byte(tomlScript), ".toml")
	require.NoError(t, err)

	assert.Equal(t, "items", s.Path)
	assert.Equal(t, []any{"a", "b", "c"}, s.Values["items"])
	require.Len(t, s.Steps, 2)
	assert.Equal(t, 1, s.Steps[1].Index)
	assert.Equal(t, "x", s.Steps[1].Value)
}

func TestParseScript_Errors(t *testing.T) {
	_, err := ParseScript([]byte("steps: []"), ".yaml")
	assert.Error(t, err)

	_, err = ParseScript([]byte("path: [unterminated"), ".yaml")
	assert.Error(t, err)

	_, err = ParseScript([]byte("path = "), ".toml")
	assert.Error(t, err)
}

func TestRun_YAML(t *testing.T) {
	s, err := ParseScript([]byte(yamlScript), ".yaml")
	require.NoError(t, err)

	report, err := Run(s, zap.NewNop(), fieldarray.CloneGoClone, false)
	require.NoError(t, err)
	require.Len(t, report.Steps, 4)

	assert.Equal(t, []fieldarray.Change{
		{Path: "arr[1]", OldValue: nil, NewValue: map[string]any{"n": "b"}},
	}, report.Steps[0].Changes)
	assert.Equal(t, []int{0, 1}, report.Steps[0].Keys)

	// The external write is picked up on flush with fresh keys.
	assert.Empty(t, report.Steps[1].Changes)
	assert.Equal(t, []int{0, 1}, report.Steps[1].Keys)
	assert.Equal(t, []int{2, 3, 4}, report.Steps[2].Keys)

	assert.Equal(t, []int{3, 4, 2}, report.Steps[3].Keys)
	assert.Len(t, report.Steps[3].Changes, 3)
	assert.Equal(t, []any{"y", "z", "x"}, report.Values["arr"])
}

func TestRun_TOML(t *testing.T) {
	s, err := ParseScript([]byte(tomlScript), ".toml")
	require.NoError(t, err)

	for _, strategy := range []fieldarray.CloneStrategy{
		fieldarray.CloneGoClone,
		fieldarray.CloneCopyStructure,
		fieldarray.CloneDeepCopy,
	} {
		t.Run(string(strategy), func(t *testing.T) {
			report, err := Run(s, zap.NewNop(), strategy, true)
			require.NoError(t, err)

			assert.Equal(t, []fieldarray.Change{
				{Path: "items[1]", OldValue: "b", NewValue: "c"},
				{Path: "items[2]", OldValue: "c", NewValue: nil},
			}, report.Steps[0].Changes)
			assert.Equal(t, []fieldarray.Change{
				{Path: "items[1]", OldValue: "c", NewValue: "x"},
				{Path: "items[2]", OldValue: nil, NewValue: "c"},
			}, report.Steps[1].Changes)
			assert.Equal(t, []any{"a", "x", "c"}, report.Values["items"])
		})
	}
}

func TestRun_UnknownOp(t *testing.T) {
	_, err := Run(&Script{Path: "arr", Steps: []Step{{Op: "explode"}}}, zap.NewNop(), "", false)
	assert.ErrorContains(t, err, `unknown op "explode"`)
}

func TestRun_ResetRestoresStagedValues(t *testing.T) {
	s := &Script{
		Path:   "arr",
		Values: map[string]any{"arr": []any{"a"}},
		Steps: []Step{
			{Op: "push", Value: "b"},
			{Op: "update", Index: 0, Value: "A"},
			{Op: "reset"},
		},
	}

	report, err := Run(s, zap.NewNop(), "", false)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, report.Values["arr"])
	assert.Equal(t, []int{0, 1}, report.Steps[2].Keys)
}
