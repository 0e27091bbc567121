package units

import (
	"math"

	"github.com/SamiPerttu/fundsp/fundsp"
)

// DbAmp returns a constant generator emitting the linear amplitude
// equivalent to db decibels (10^(db/20)), for use as a gain factor fed
// into a Mul combinator.
func DbAmp(db float64) fundsp.Node {
	return Constant(math.Pow(10, db/20))
}

// MulScalar broadcasts c across every output of a; a thin alias over
// fundsp.MulScalar kept here so scenario code can read "units.MulScalar"
// alongside the rest of this package's surface.
func MulScalar(a fundsp.Node, c float64) fundsp.Node { return fundsp.MulScalar(a, c) }

// AddScalar broadcasts c across every output of a; a thin alias over
// fundsp.AddScalar.
func AddScalar(a fundsp.Node, c float64) fundsp.Node { return fundsp.AddScalar(a, c) }
