package picker

import (
	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/go-gl/mathgl/mgl32"
)

// RayCaster produces world-space pick rays from viewport pixels. camera.Camera satisfies it.
type RayCaster interface {
	Ray(px, py float32) common.Ray
}

// Result is the outcome of a pick. A miss is a valid result with Hit false and Control nil.
type Result struct {
	// Control is the nearest intersected control, nil on a miss.
	Control control.Control

	// Hit reports whether any candidate was intersected.
	Hit bool

	// Distance is the world-space distance from the ray origin to the hit point.
	Distance float32

	// Point is the hit point in world space.
	Point mgl32.Vec3

	// LocalPoint is the hit point in the control's local mesh frame.
	LocalPoint mgl32.Vec3
}

// Cast intersects a world-space ray with the local bounds of each candidate at its
// current pose and returns the nearest hit. Candidates are tested in order and a
// later candidate replaces the best hit only when strictly closer, so ties go to the
// earlier candidate. Nil candidates and candidates with empty bounds are skipped.
//
// Parameters:
//   - ray: the world-space pick ray
//   - candidates: the controls to test
//
// Returns:
//   - Result: the nearest hit, or a miss
func Cast(ray common.Ray, candidates []control.Control) Result {
	var best Result
	for _, c := range candidates {
		if c == nil || c.Bounds().Empty() {
			continue
		}

		world := c.WorldMatrix()
		inv := world.Inv()
		local := ray.Transform(inv)

		// The local ray keeps the world parameterisation, so t is comparable across candidates.
		t, ok := local.IntersectAABB(c.Bounds())
		if !ok {
			continue
		}
		dist := t * ray.Direction.Len()
		if best.Hit && dist >= best.Distance {
			continue
		}
		best = Result{
			Control:    c,
			Hit:        true,
			Distance:   dist,
			Point:      ray.At(t),
			LocalPoint: local.At(t),
		}
	}
	return best
}

// Pick casts a ray through a viewport pixel.
//
// Parameters:
//   - px, py: pixel coordinates, origin top-left
//   - cam: the camera that renders the scene
//   - candidates: the controls to test
//
// Returns:
//   - Result: the nearest hit, or a miss
func Pick(px, py float32, cam RayCaster, candidates []control.Control) Result {
	if cam == nil {
		return Result{}
	}
	return Cast(cam.Ray(px, py), candidates)
}
