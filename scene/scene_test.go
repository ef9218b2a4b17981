package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdok/fixvec/fix64"
	"github.com/pdok/fixvec/vec"
)

const validScene = `{
	"name": "two bodies",
	"bounds": {"min": [0, 0], "max": [10, 10]},
	"timeStep": 0.5,
	"steps": 16,
	"bodies": [
		{"name": "ball", "position": [1, 1], "velocity": [2, 0]},
		{"name": "puck", "position": [5, 5], "velocity": [0, -1]}
	]
}`

func TestUnmarshal(t *testing.T) {
	var s Scene
	err := json.Unmarshal([]byte(validScene), &s)
	require.NoError(t, err)
	assert.Equal(t, "two bodies", s.Name)
	assert.Equal(t, 0.5, s.TimeStep)
	assert.Equal(t, uint(16), s.Steps)
	require.Len(t, s.Bodies, 2)
	assert.Equal(t, "ball", s.Bodies[0].Name)
	assert.Equal(t, [2]float64{2, 0}, s.Bodies[0].Velocity)
}

func TestUnmarshalAppliesDefaults(t *testing.T) {
	var s Scene
	err := json.Unmarshal([]byte(`{
		"name": "minimal",
		"bounds": {"min": [0, 0], "max": [1, 1]},
		"bodies": [{"name": "dot"}]
	}`), &s)
	require.NoError(t, err)
	assert.Equal(t, 0.0625, s.TimeStep)
	assert.Equal(t, uint(64), s.Steps)
}

func TestUnmarshalToleratesUnknownFields(t *testing.T) {
	var s Scene
	err := json.Unmarshal([]byte(`{
		"name": "annotated",
		"author": "somebody",
		"bounds": {"min": [0, 0], "max": [1, 1]},
		"bodies": [{"name": "dot", "color": "red"}]
	}`), &s)
	require.NoError(t, err)
	assert.Equal(t, "annotated", s.Name)
}

func TestUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name      string
		sceneJSON string
	}{
		{name: "missing name", sceneJSON: `{
			"bounds": {"min": [0, 0], "max": [1, 1]},
			"bodies": [{"name": "dot"}]
		}`},
		{name: "no bodies", sceneJSON: `{
			"name": "empty",
			"bounds": {"min": [0, 0], "max": [1, 1]},
			"bodies": []
		}`},
		{name: "zero time step", sceneJSON: `{
			"name": "frozen",
			"bounds": {"min": [0, 0], "max": [1, 1]},
			"timeStep": 0,
			"bodies": [{"name": "dot"}]
		}`},
		{name: "zero steps", sceneJSON: `{
			"name": "idle",
			"bounds": {"min": [0, 0], "max": [1, 1]},
			"steps": 0,
			"bodies": [{"name": "dot"}]
		}`},
		{name: "unnamed body", sceneJSON: `{
			"name": "anonymous",
			"bounds": {"min": [0, 0], "max": [1, 1]},
			"bodies": [{"position": [0, 0]}]
		}`},
		{name: "duplicate body names", sceneJSON: `{
			"name": "twins",
			"bounds": {"min": [0, 0], "max": [1, 1]},
			"bodies": [{"name": "dot"}, {"name": "dot"}]
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scene
			require.Error(t, json.Unmarshal([]byte(tt.sceneJSON), &s))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(validScene), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "two bodies", s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestConverters(t *testing.T) {
	var s Scene
	require.NoError(t, json.Unmarshal([]byte(validScene), &s))

	assert.Equal(t, vec.Zero, s.Bounds.MinVec())
	assert.Equal(t, vec.New(fix64.FromInt(10), fix64.FromInt(10)), s.Bounds.MaxVec())
	assert.Equal(t, vec.New(fix64.One, fix64.One), s.Bodies[0].PositionVec())
	assert.Equal(t, vec.New(fix64.FromInt(2), fix64.Zero), s.Bodies[0].VelocityVec())
	assert.Equal(t, fix64.Half, s.TimeStepQ())
}
