package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in 3D space. Direction does not need to be normalized; all
// intersection results are expressed as the ray parameter t, where the hit point
// is Origin + Direction*t.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t along the ray.
//
// Parameters:
//   - t: the ray parameter
//
// Returns:
//   - mgl32.Vec3: Origin + Direction*t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray through an affine matrix. The direction is transformed
// without renormalization so that a parameter t names the same point before and
// after the transform, which keeps distances from different local frames comparable.
//
// Parameters:
//   - m: the affine transform to apply
//
// Returns:
//   - Ray: the transformed ray
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, m),
		Direction: mgl32.TransformNormal(r.Direction, m),
	}
}

// IntersectPlane returns the parameter at which the ray crosses the plane.
// Rays parallel to the plane or crossing it behind the origin report no hit.
//
// Parameters:
//   - p: the plane to test against
//
// Returns:
//   - float32: the ray parameter of the crossing
//   - bool: true if the ray hits the plane at t >= 0
func (r Ray) IntersectPlane(p Plane) (float32, bool) {
	denom := p.Normal.Dot(r.Direction)
	if Abs(denom) < Epsilon {
		return 0, false
	}
	t := -(p.Normal.Dot(r.Origin) + p.Distance) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectAABB tests the ray against an axis-aligned box using the slab method.
// When the origin lies inside the box the exit parameter is returned.
//
// Parameters:
//   - b: the box to test against
//
// Returns:
//   - float32: the ray parameter of the nearest intersection at t >= 0
//   - bool: true if the ray hits the box
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]
		if Abs(d) < Epsilon {
			// Parallel to this slab: miss unless the origin is between the faces.
			if o < b.Min[i] || o > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	if tMin >= 0 {
		return tMin, true
	}
	return tMax, true
}

// Plane represents a plane in 3D space using the equation: n·p + d = 0
// where Normal is the unit normal and Distance is d.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// NewPlane builds a plane from a normal and any point lying on it.
// The normal is normalized; a zero normal yields the XZ ground plane through the point.
//
// Parameters:
//   - normal: the plane normal
//   - point: a point on the plane
//
// Returns:
//   - Plane: the constructed plane
func NewPlane(normal, point mgl32.Vec3) Plane {
	if normal.Len() < Epsilon {
		normal = mgl32.Vec3{0, 1, 0}
	}
	n := normal.Normalize()
	return Plane{Normal: n, Distance: -n.Dot(point)}
}

// DistanceTo returns the signed distance from a point to the plane.
//
// Parameters:
//   - p: the point to measure
//
// Returns:
//   - float32: positive on the side the normal points to
func (p Plane) DistanceTo(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// AABB is an axis-aligned bounding box. For controls it is expressed in the
// control's local mesh frame, so testing a ray transformed into that frame is an
// exact oriented-box test in world space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB builds a box from two opposite corners in any order.
//
// Parameters:
//   - a, b: opposite corners
//
// Returns:
//   - AABB: the normalized box
func NewAABB(a, b mgl32.Vec3) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		box.Min[i] = float32(math.Min(float64(a[i]), float64(b[i])))
		box.Max[i] = float32(math.Max(float64(a[i]), float64(b[i])))
	}
	return box
}

// Empty reports whether the box has no volume on every axis, i.e. was never set.
func (b AABB) Empty() bool {
	return b.Min == b.Max
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether the point lies inside or on the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}
