package sim

import "github.com/xkilldash9x/paramctl/internal/paramset"

// joint holds the hardware envelope of one TX2-40 axis, in degrees and
// degrees per second.
type joint struct {
	lo, hi float64
	vMax   float64
}

var tx2Joints = []joint{
	{lo: -180, hi: 180, vMax: 555},
	{lo: -125, hi: 125, vMax: 475},
	{lo: -138, hi: 138, vMax: 585},
	{lo: -270, hi: 270, vMax: 1035},
	{lo: -120, hi: 133.5, vMax: 1135},
	{lo: -270, hi: 270, vMax: 1575},
}

// tx2TrafoParams are the transformation parameter indices the controller exposes.
var tx2TrafoParams = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 14, 20, 21, 22, 23, 24, 25, 30, 31}

const (
	maxAcceleration = 10000
	maxRatio        = 1
)

// NewTX2Model returns a model declaring the parameters of a Staubli TX2-40 HB
// robot controller rooted at t, with factory values and hardware bounds.
func NewTX2Model(t paramset.Template, opts ...Option) *Model {
	m := NewModel(append([]Option{WithTemplate(t)}, opts...)...)

	m.Declare(t.Path(paramset.KinematicID), 0, nil)
	for _, i := range tx2TrafoParams {
		m.Declare(t.Path(paramset.ParName(i)), 0, nil)
	}

	for i, j := range tx2Joints {
		axis := i + 1
		limits := &Bounds{Min: j.lo, Max: j.hi}
		name := func(field string) string { return t.Path(paramset.AxisName("Axis", axis, field)) }

		m.Declare(name("ratio"), 1, &Bounds{Min: 0, Max: maxRatio})
		m.Declare(name("s_min"), j.lo, limits)
		m.Declare(name("s_max"), j.hi, limits)
		m.Declare(name("s_init"), 0, limits)
		m.Declare(name("v_max"), j.vMax, &Bounds{Min: 0, Max: j.vMax})
		m.Declare(name("a_max"), 1000, &Bounds{Min: 0, Max: maxAcceleration})
	}
	return m
}
