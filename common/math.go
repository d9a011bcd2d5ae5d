package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used by the geometric helpers in this package when
// comparing floating point values against zero.
const Epsilon float32 = 1e-7

// Damp moves current toward target by a fixed fraction k of the remaining delta.
// Repeated application converges exponentially: the remaining distance after n
// steps is (1-k)^n of the original. k is expected in (0, 1]; k == 1 snaps to target.
//
// Parameters:
//   - current: the current value
//   - target: the value being approached
//   - k: damping constant in (0, 1]
//
// Returns:
//   - float32: the damped value
func Damp(current, target, k float32) float32 {
	return current + (target-current)*k
}

// DampVec3 applies Damp component-wise to a vector.
//
// Parameters:
//   - current: the current vector
//   - target: the vector being approached
//   - k: damping constant in (0, 1]
//
// Returns:
//   - mgl32.Vec3: the damped vector
func DampVec3(current, target mgl32.Vec3, k float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Damp(current[0], target[0], k),
		Damp(current[1], target[1], k),
		Damp(current[2], target[2], k),
	}
}

// SlerpShortest spherically interpolates from q1 toward q2 by amount, taking the
// shortest arc. mgl32.QuatSlerp does not flip hemispheres, so q2 is negated when
// the quaternions lie on opposite sides of the 4D sphere.
//
// Parameters:
//   - q1: the start orientation
//   - q2: the target orientation
//   - amount: interpolation fraction in [0, 1]
//
// Returns:
//   - mgl32.Quat: the interpolated orientation (unit length)
func SlerpShortest(q1, q2 mgl32.Quat, amount float32) mgl32.Quat {
	if q1.Dot(q2) < 0 {
		q2 = q2.Scale(-1)
	}
	return mgl32.QuatSlerp(q1, q2, amount).Normalize()
}

// ClampLength limits the length of v to maxLen. When v is longer than maxLen it is
// rescaled to exactly maxLen and clamped is true; otherwise v is returned unchanged.
//
// Parameters:
//   - v: the vector to clamp
//   - maxLen: the maximum allowed length (must be >= 0)
//
// Returns:
//   - mgl32.Vec3: the clamped vector
//   - bool: true if v exceeded maxLen
func ClampLength(v mgl32.Vec3, maxLen float32) (mgl32.Vec3, bool) {
	l := v.Len()
	if l <= maxLen {
		return v, false
	}
	return v.Mul(maxLen / l), true
}

// PointerToNDC converts a pixel coordinate inside a viewport to normalized device
// coordinates in [-1, 1], with +Y pointing up.
//
// Parameters:
//   - px, py: pointer position in pixels relative to the viewport's top-left corner
//   - width, height: viewport size in pixels
//
// Returns:
//   - x, y: normalized device coordinates
func PointerToNDC(px, py, width, height float32) (x, y float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	x = (px/width)*2 - 1
	y = -(py/height)*2 + 1
	return x, y
}

// Abs returns the absolute value of a float32.
func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
