// Package kinematics converts between quaternions and Euler angles.
//
// All conversions use static (extrinsic) x-y-z axes, "sxyz" in the
// transforms3d naming: roll about x, then pitch about y, then yaw about z,
// each about the fixed frame. Quaternions are gonum quat.Number values
// with Real as w and Imag/Jmag/Kmag as x/y/z.
package kinematics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

const (
	// below this squared norm a quaternion is treated as zero
	eps = 2.220446049250313e-16
	// below this value cos(pitch) is treated as zero (gimbal lock)
	eps4 = 4 * eps
)

type Euler struct {
	Roll, Pitch, Yaw float64
}

// QuatToEuler returns the sxyz Euler angles of q.
// q does not need to be normalized. A zero quaternion yields the identity.
// NaN components yield NaN angles.
func QuatToEuler(q quat.Number) Euler {
	if quat.IsNaN(q) {
		nan := math.NaN()
		return Euler{nan, nan, nan}
	}
	m := rotationMatrix(q)
	cy := math.Sqrt(m[0][0]*m[0][0] + m[1][0]*m[1][0])
	if cy > eps4 {
		return Euler{
			Roll:  math.Atan2(m[2][1], m[2][2]),
			Pitch: math.Atan2(-m[2][0], cy),
			Yaw:   math.Atan2(m[1][0], m[0][0]),
		}
	}
	// gimbal lock, yaw is folded into roll
	return Euler{
		Roll:  math.Atan2(-m[1][2], m[1][1]),
		Pitch: math.Atan2(-m[2][0], cy),
		Yaw:   0,
	}
}

// EulerToQuat returns the unit quaternion for sxyz Euler angles
func EulerToQuat(e Euler) quat.Number {
	si, ci := math.Sincos(e.Roll / 2)
	sj, cj := math.Sincos(e.Pitch / 2)
	sk, ck := math.Sincos(e.Yaw / 2)
	cc := ci * ck
	cs := ci * sk
	sc := si * ck
	ss := si * sk
	return quat.Number{
		Real: cj*cc + sj*ss,
		Imag: cj*sc - sj*cs,
		Jmag: cj*ss + sj*cc,
		Kmag: cj*cs - sj*sc,
	}
}

// Yaw returns the rotation of q about the z axis
func Yaw(q quat.Number) float64 {
	return QuatToEuler(q).Yaw
}

// FlattenToYaw drops roll and pitch of q and keeps its yaw
func FlattenToYaw(q quat.Number) quat.Number {
	return EulerToQuat(Euler{Yaw: Yaw(q)})
}

// rotationMatrix returns the rotation matrix of the normalized q.
// Near zero quaternions map to the identity.
func rotationMatrix(q quat.Number) [3][3]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	n := w*w + x*x + y*y + z*z
	if n < eps {
		return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	s := 2.0 / n
	xs, ys, zs := x*s, y*s, z*s
	wx, wy, wz := w*xs, w*ys, w*zs
	xx, xy, xz := x*xs, x*ys, x*zs
	yy, yz, zz := y*ys, y*zs, z*zs
	return [3][3]float64{
		{1 - (yy + zz), xy - wz, xz + wy},
		{xy + wz, 1 - (xx + zz), yz - wx},
		{xz - wy, yz + wx, 1 - (xx + yy)},
	}
}
