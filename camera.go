package segue

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrMissingPose is returned by the camera guard when the target section has
// no configured pose.
var ErrMissingPose = errors.New("segue: section has no camera pose")

// cameraAnim holds the snapshot an in-flight camera glide interpolates from.
type cameraAnim struct {
	target   int
	fromPos  Vec3
	fromLook Vec3
	toPose   Pose
}

// Camera is the 3D consumer: a perspective camera that glides between the
// poses of its sections. Position and look-at point are interpolated
// separately and the orientation is derived from them, so the rig never
// interpolates a rotation directly.
type Camera struct {
	// Position is the camera's world-space position.
	Position Vec3
	// Up is the world up direction used to build the view basis.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64

	forward Vec3
	lookAt  Vec3

	registry *Registry
	ease     Easing
	log      *zap.Logger
	anim     *cameraAnim
}

// NewCamera creates a camera over registry. A nil easing selects
// EaseOutCubic. The camera starts at the pose of the first section that has
// one, or at (0, 0, 10) looking at the origin.
func NewCamera(registry *Registry, easing Easing, logger *zap.Logger) *Camera {
	if easing == nil {
		easing = EaseOutCubic
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Camera{
		Up:       Vec3{0, 1, 0},
		FOV:      45,
		registry: registry,
		ease:     easing,
		log:      logger,
	}
	c.SetPose(Pose{Position: Vec3{0, 0, 10}})
	if registry != nil {
		for _, s := range registry.Sections() {
			if s.HasPose() {
				c.SetPose(*s.Pose)
				break
			}
		}
	}
	return c
}

// Attach wires the camera to a scheduler: transitions toward sections
// without a pose are rejected, and every accepted transition snapshots the
// camera's current pose.
func (c *Camera) Attach(s *Scheduler) {
	if c.registry == nil {
		c.registry = s.Registry()
	}
	s.AddGuard(c.guard)
	s.OnTransitionStart(c.begin)
	if sec, ok := c.registry.Get(s.ActiveIndex()); ok && sec.HasPose() {
		c.SetPose(*sec.Pose)
	}
}

func (c *Camera) guard(target Section) error {
	if !target.HasPose() {
		return fmt.Errorf("section %q: %w", target.ID, ErrMissingPose)
	}
	return nil
}

// begin snapshots where the camera is and where it currently points. The
// start look-at point lies along the current forward vector at the distance
// of the target's look-at point, so the glide departs from the present view
// even if a previous glide was cut short.
func (c *Camera) begin(from, to int) {
	sec, ok := c.registry.Get(to)
	if !ok || !sec.HasPose() {
		c.log.Warn("camera begin without pose", zap.Int("index", to))
		c.anim = nil
		return
	}
	dist := sec.Pose.LookAt.Sub(c.Position).Len()
	if dist < 1e-9 {
		dist = 1
	}
	c.anim = &cameraAnim{
		target:   to,
		fromPos:  c.Position,
		fromLook: c.Position.Add(c.forward.Scale(dist)),
		toPose:   *sec.Pose,
	}
}

// Apply updates the camera pose from a Frame.
func (c *Camera) Apply(f Frame) {
	if c.anim == nil {
		return
	}
	if !f.Running() {
		if f.Active == c.anim.target {
			c.SetPose(c.anim.toPose)
		}
		c.anim = nil
		return
	}
	if f.Target != c.anim.target {
		return
	}
	e := c.ease(f.Progress)
	c.setPose(
		LerpVec3(c.anim.fromPos, c.anim.toPose.Position, e),
		LerpVec3(c.anim.fromLook, c.anim.toPose.LookAt, e),
	)
}

// Animating reports whether a glide is in progress.
func (c *Camera) Animating() bool {
	return c.anim != nil
}

// SetPose places the camera immediately. A running glide keeps its original
// snapshot and overrides the pose on the next frame.
func (c *Camera) SetPose(p Pose) {
	c.setPose(p.Position, p.LookAt)
}

func (c *Camera) setPose(pos, look Vec3) {
	c.Position = pos
	c.lookAt = look
	if dir := look.Sub(pos); dir.Len() > 1e-9 {
		c.forward = dir.Normalize()
	} else if c.forward == (Vec3{}) {
		c.forward = Vec3{0, 0, -1}
	}
}

// Pose returns the current position and look-at point.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, LookAt: c.lookAt}
}

// Forward returns the unit view direction.
func (c *Camera) Forward() Vec3 {
	return c.forward
}

// LookAtPoint returns the point the camera is aimed at.
func (c *Camera) LookAtPoint() Vec3 {
	return c.lookAt
}

// basis returns the right and up vectors of the view.
func (c *Camera) basis() (right, up Vec3) {
	f := c.forward
	u := c.Up
	if u == (Vec3{}) {
		u = Vec3{0, 1, 0}
	}
	right = cross(f, u).Normalize()
	if right.Len() < 1e-9 {
		right = Vec3{1, 0, 0}
	}
	up = cross(right, f)
	return right, up
}

// Project maps a world-space point into viewport coordinates with a
// perspective projection. ok is false for points behind the camera.
func (c *Camera) Project(p Vec3, viewport Rect) (sx, sy float64, ok bool) {
	rel := p.Sub(c.Position)
	depth := rel.Dot(c.forward)
	if depth <= 1e-6 {
		return 0, 0, false
	}
	right, up := c.basis()
	fov := c.FOV
	if fov <= 0 {
		fov = 45
	}
	focal := (viewport.Height / 2) / math.Tan(fov*math.Pi/360)
	x := rel.Dot(right) / depth * focal
	y := rel.Dot(up) / depth * focal
	return viewport.X + viewport.Width/2 + x, viewport.Y + viewport.Height/2 - y, true
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
