package segue

// LerpScalar interpolates between a and b. t is not clamped so overshooting
// easings (outBack, outElastic) can pass through.
func LerpScalar(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec3 interpolates each component of a toward b.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: LerpScalar(a.X, b.X, t),
		Y: LerpScalar(a.Y, b.Y, t),
		Z: LerpScalar(a.Z, b.Z, t),
	}
}

// LerpPose interpolates position and look-at point independently.
func LerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Position: LerpVec3(a.Position, b.Position, t),
		LookAt:   LerpVec3(a.LookAt, b.LookAt, t),
	}
}
