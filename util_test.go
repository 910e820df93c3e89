package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares float32 values and structs of them with an absolute
// tolerance.
func approx(tolerance float64) cmp.Option {
	return cmpopts.EquateApprox(0, tolerance)
}

// straightLine returns an open path with n waypoints spaced 10 apart along
// +X.
func straightLine(n int) *Path {
	p := &Path{Resolution: 10}
	for i := range n {
		p.Waypoints = append(p.Waypoints, Wp(float32(i)*10, 0, 0))
	}
	return p
}

// unitSquareLoop returns a looped path over the corners of a square with
// side 10 in the XZ plane.
func unitSquareLoop() *Path {
	return &Path{
		Looped:     true,
		Resolution: 10,
		Waypoints: []Waypoint{
			Wp(0, 0, 0),
			Wp(10, 0, 0),
			Wp(10, 0, 10),
			Wp(0, 0, 10),
		},
	}
}
