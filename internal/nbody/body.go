package nbody

import "math"

const (
	SolarMass   = 4 * math.Pi * math.Pi
	DaysPerYear = 365.24

	// NumBodies is the Sun plus the four Jovian planets.
	NumBodies = 5
	// Interactions is the number of unordered body pairs.
	Interactions = NumBodies * (NumBodies - 1) / 2

	TimeStep = 0.01
)

// Star is the index of the dominant body.
const Star = 0

type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v[0] * f, v[1] * f, v[2] * f} }
func (v Vec3) Dot(o Vec3) float64   { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Norm() float64        { return math.Sqrt(v.Dot(v)) }

func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Body is a point mass. Mass is fixed after initialization.
type Body struct {
	Position Vec3
	Velocity Vec3
	Mass     float64
}

// System is the complete simulation state.
type System [NumBodies]Body

// Names lists the bodies in index order.
var Names = [NumBodies]string{"sun", "jupiter", "saturn", "uranus", "neptune"}

var startingState = System{
	{
		Mass: SolarMass,
	},
	{
		Position: Vec3{
			4.84143144246472090e+00,
			-1.16032004402742839e+00,
			-1.03622044471123109e-01,
		},
		Velocity: Vec3{
			1.66007664274403694e-03 * DaysPerYear,
			7.69901118419740425e-03 * DaysPerYear,
			-6.90460016972063023e-05 * DaysPerYear,
		},
		Mass: 9.54791938424326609e-04 * SolarMass,
	},
	{
		Position: Vec3{
			8.34336671824457987e+00,
			4.12479856412430479e+00,
			-4.03523417114321381e-01,
		},
		Velocity: Vec3{
			-2.76742510726862411e-03 * DaysPerYear,
			4.99852801234917238e-03 * DaysPerYear,
			2.30417297573763929e-05 * DaysPerYear,
		},
		Mass: 2.85885980666130812e-04 * SolarMass,
	},
	{
		Position: Vec3{
			1.28943695621391310e+01,
			-1.51111514016986312e+01,
			-2.23307578892655734e-01,
		},
		Velocity: Vec3{
			2.96460137564761618e-03 * DaysPerYear,
			2.37847173959480950e-03 * DaysPerYear,
			-2.96589568540237556e-05 * DaysPerYear,
		},
		Mass: 4.36624404335156298e-05 * SolarMass,
	},
	{
		Position: Vec3{
			1.53796971148509165e+01,
			-2.59193146099879641e+01,
			1.79258772950371181e-01,
		},
		Velocity: Vec3{
			2.68067772490389322e-03 * DaysPerYear,
			1.62824170038242295e-03 * DaysPerYear,
			-9.51592254519715870e-05 * DaysPerYear,
		},
		Mass: 5.15138902046611451e-05 * SolarMass,
	},
}

// InitialState returns the reference epoch positions, velocities and masses.
// Momentum is not yet normalized.
func InitialState() System {
	return startingState
}

// IsFinite reports whether every position and velocity component is finite.
func (s *System) IsFinite() bool {
	for i := range s {
		if !s[i].Position.IsFinite() || !s[i].Velocity.IsFinite() {
			return false
		}
	}
	return true
}

// Snapshot is the position of one body after a given step.
type Snapshot struct {
	Time   int
	Planet int
	X      float64
	Y      float64
	Z      float64
}

// Snapshots returns one record per body for step t.
func (s *System) Snapshots(t int) [NumBodies]Snapshot {
	var out [NumBodies]Snapshot
	for i := range s {
		p := s[i].Position
		out[i] = Snapshot{Time: t, Planet: i, X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}
