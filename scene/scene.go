// Package scene defines the JSON scene document the simulator runs from.
//
// Coordinates enter as plain JSON numbers (display precision) and are
// converted to fixed point exactly once, on load. From there on all
// arithmetic is deterministic.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/perimeterx/marshmallow"

	"github.com/pdok/fixvec/fix64"
	"github.com/pdok/fixvec/vec"
)

// Scene describes one deterministic simulation run: a bounded plane,
// a fixed time step and the bodies moving on it.
type Scene struct {
	// Scene identifier, used in logging and as the GeoPackage layer prefix
	Name string `validate:"required" json:"name"`
	// Axis-aligned bounds the bodies bounce in
	Bounds Bounds `validate:"required" json:"bounds"`
	// Simulation time step in seconds
	TimeStep float64 `validate:"gt=0" default:"0.0625" json:"timeStep"`
	// Number of steps to run
	Steps uint `validate:"min=1" default:"64" json:"steps"`
	// The moving bodies; names must be unique
	Bodies []Body `validate:"required,min=1,dive" json:"bodies"`
}

type Bounds struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

type Body struct {
	Name     string     `validate:"required" json:"name"`
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
}

func (s *Scene) UnmarshalJSON(data []byte) error {
	err := defaults.Set(s)
	if err != nil {
		return err
	}

	_, err = marshmallow.Unmarshal(data, s, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = validate.Struct(s)
	if err != nil {
		return err
	}

	seen := make(map[string]any, len(s.Bodies))
	for _, body := range s.Bodies {
		if _, dup := seen[body.Name]; dup {
			return fmt.Errorf(`duplicate body name "%v"`, body.Name)
		}
		seen[body.Name] = struct{}{}
	}
	return nil
}

func Load(path string) (Scene, error) {
	var s Scene
	sceneJSON, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	err = json.Unmarshal(sceneJSON, &s)
	if err != nil {
		return s, err
	}
	return s, nil
}

func (b Bounds) MinVec() vec.Vec2 {
	return vec.New(fix64.FromFloat64(b.Min[0]), fix64.FromFloat64(b.Min[1]))
}

func (b Bounds) MaxVec() vec.Vec2 {
	return vec.New(fix64.FromFloat64(b.Max[0]), fix64.FromFloat64(b.Max[1]))
}

func (b Body) PositionVec() vec.Vec2 {
	return vec.New(fix64.FromFloat64(b.Position[0]), fix64.FromFloat64(b.Position[1]))
}

func (b Body) VelocityVec() vec.Vec2 {
	return vec.New(fix64.FromFloat64(b.Velocity[0]), fix64.FromFloat64(b.Velocity[1]))
}

func (s Scene) TimeStepQ() fix64.Q {
	return fix64.FromFloat64(s.TimeStep)
}
