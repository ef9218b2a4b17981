// Package sim runs a deterministic bounce simulation on a bounded plane.
//
// It is the integration surface for the fixed-point vector layer: identical
// scenes produce bit-identical traces on every platform, which is what makes
// lockstep replay of a run possible. Anything order-sensitive (body
// iteration, bounce logs, proximity reports) runs over explicitly ordered
// collections, never over bare Go maps.
package sim

import (
	"fmt"
	"sort"

	"github.com/umpc/go-sortedmap"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/pdok/fixvec/fix64"
	"github.com/pdok/fixvec/mathhelp"
	"github.com/pdok/fixvec/scene"
	"github.com/pdok/fixvec/vec"
)

// Body is a point mass with a trace of everywhere it has been.
type Body struct {
	Name string
	Pos  vec.Vec2
	Vel  vec.Vec2
	// Track holds the position after every step, starting with the initial one
	Track []vec.Vec2
}

// Bounce records one wall hit.
type Bounce struct {
	Step uint
	Body string
	// Normal is the unit normal of the wall that was hit
	Normal vec.Vec2
}

// Pair is one proximity report entry. A and B are body names.
type Pair struct {
	A, B       string
	DistanceSq fix64.Q
}

type Simulation struct {
	min, max vec.Vec2
	dt       fix64.Q
	step     uint
	bodies   *orderedmap.OrderedMap[string, *Body]
	// bounce records sorted by step, then body name, then wall
	bounces *sortedmap.SortedMap
}

func New(min, max vec.Vec2, dt fix64.Q) *Simulation {
	return &Simulation{
		min:    min,
		max:    max,
		dt:     dt,
		bodies: orderedmap.New[string, *Body](),
		bounces: sortedmap.New(8, func(x, y interface{}) bool {
			a, b := x.(Bounce), y.(Bounce)
			if a.Step != b.Step {
				return a.Step < b.Step
			}
			return a.Body < b.Body
		}),
	}
}

func FromScene(s scene.Scene) (*Simulation, error) {
	sim := New(s.Bounds.MinVec(), s.Bounds.MaxVec(), s.TimeStepQ())
	for _, body := range s.Bodies {
		err := sim.AddBody(body.Name, body.PositionVec(), body.VelocityVec())
		if err != nil {
			return nil, err
		}
	}
	return sim, nil
}

func (s *Simulation) AddBody(name string, pos, vel vec.Vec2) error {
	if _, exists := s.bodies.Get(name); exists {
		return fmt.Errorf(`a body named "%v" already exists`, name)
	}
	if !s.contains(pos) {
		return fmt.Errorf(`body "%v" starts outside the bounds at %v`, name, pos)
	}
	s.bodies.Set(name, &Body{Name: name, Pos: pos, Vel: vel, Track: []vec.Vec2{pos}})
	return nil
}

func (s *Simulation) contains(p vec.Vec2) bool {
	return mathhelp.BetweenInc(p.X(), s.min.X(), s.max.X()) &&
		mathhelp.BetweenInc(p.Y(), s.min.Y(), s.max.Y())
}

// Step advances every body by one time step. A body crossing a wall has its
// velocity reflected off that wall's unit normal and its position clamped
// back onto the bounds.
func (s *Simulation) Step() {
	s.step++
	for pair := s.bodies.Oldest(); pair != nil; pair = pair.Next() {
		body := pair.Value
		next := body.Pos.Add(body.Vel.Scale(s.dt))
		for _, wall := range s.crossedWalls(next) {
			body.Vel = body.Vel.Reflect(wall)
			s.recordBounce(body.Name, wall)
		}
		body.Pos = next.Clamp(s.min, s.max)
		body.Track = append(body.Track, body.Pos)
	}
}

func (s *Simulation) Run(steps uint) {
	for i := uint(0); i < steps; i++ {
		s.Step()
	}
}

// crossedWalls reports the unit normals of the walls p has crossed.
// A corner hit reports both walls.
func (s *Simulation) crossedWalls(p vec.Vec2) []vec.Vec2 {
	var normals []vec.Vec2
	if p.X() < s.min.X() {
		normals = append(normals, vec.Right)
	}
	if p.X() > s.max.X() {
		normals = append(normals, vec.Left)
	}
	if p.Y() < s.min.Y() {
		normals = append(normals, vec.Up)
	}
	if p.Y() > s.max.Y() {
		normals = append(normals, vec.Down)
	}
	return normals
}

func (s *Simulation) recordBounce(name string, normal vec.Vec2) {
	rec := sortedmap.Record{
		Key: fmt.Sprintf("%06d/%s/%s", s.step, name, normal),
		Val: Bounce{Step: s.step, Body: name, Normal: normal},
	}
	s.bounces.Insert(rec.Key, rec.Val)
}

func (s *Simulation) StepCount() uint {
	return s.step
}

// Bodies returns the bodies in insertion order.
func (s *Simulation) Bodies() []*Body {
	bodies := make([]*Body, 0, s.bodies.Len())
	for pair := s.bodies.Oldest(); pair != nil; pair = pair.Next() {
		bodies = append(bodies, pair.Value)
	}
	return bodies
}

// Bounces returns all recorded wall hits ordered by step, then body name.
func (s *Simulation) Bounces() []Bounce {
	mmap := s.bounces.Map()
	keys := s.bounces.Keys()
	bounces := make([]Bounce, 0, len(keys))
	for _, key := range keys {
		bounces = append(bounces, mmap[key].(Bounce))
	}
	return bounces
}

// Proximity reports every pair of bodies whose current positions lie within
// d of each other. Candidates are ordered by the Morton key of their
// positions so the report groups spatially and stays deterministic.
func (s *Simulation) Proximity(d fix64.Q) []Pair {
	bodies := s.Bodies()
	sort.Slice(bodies, func(i, j int) bool {
		zi, zj := bodies[i].Pos.ZKey(), bodies[j].Pos.ZKey()
		if zi != zj {
			return zi < zj
		}
		return bodies[i].Name < bodies[j].Name
	})

	limit := d.Mul(d)
	var pairs []Pair
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			distSq := bodies[i].Pos.DistanceSq(bodies[j].Pos)
			if distSq <= limit {
				pairs = append(pairs, Pair{A: bodies[i].Name, B: bodies[j].Name, DistanceSq: distSq})
			}
		}
	}
	return pairs
}
