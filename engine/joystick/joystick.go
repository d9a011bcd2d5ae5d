package joystick

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	DefaultMaxRadius float32 = 0.1
	DefaultCooldown          = 500 * time.Millisecond
)

type trackerImpl struct {
	mu *sync.Mutex

	joystick  control.Control
	maxRadius float32
	cooldown  time.Duration
	clock     common.Clock
	logger    *zap.Logger

	dragging bool
	offset   mgl32.Vec3
	lastEmit time.Time
}

// Tracker follows a drag on the joystick. While dragging, the joystick's target follows
// the pointer's projection on the horizontal plane through the joystick, limited to a
// circle of the maximum radius. A direction event is emitted only at full deflection
// and at most once per cooldown window.
type Tracker interface {
	// Begin starts a drag if c is the tracked joystick.
	//
	// Parameters:
	//   - c: the control under the pointer
	//
	// Returns:
	//   - bool: true if a drag started
	Begin(c control.Control) bool

	// Drag updates the drag from a world-space pointer ray.
	//
	// Parameters:
	//   - ray: the pick ray under the pointer
	//
	// Returns:
	//   - input.Event: a joystick_* event when one is due
	//   - bool: true if an event was emitted
	Drag(ray common.Ray) (input.Event, bool)

	// DragTo updates the drag from a world-space point, typically on the drag plane.
	//
	// Parameters:
	//   - world: the pointer position in world space
	//
	// Returns:
	//   - input.Event: a joystick_* event when one is due
	//   - bool: true if an event was emitted
	DragTo(world mgl32.Vec3) (input.Event, bool)

	// End stops the drag and returns the joystick's target to rest. Emits nothing.
	End()

	// Dragging reports whether a drag is in progress.
	Dragging() bool

	// Offset returns the current planar offset from rest, in the joystick's parent frame.
	Offset() mgl32.Vec3

	// LastEmit returns the time of the last emitted direction, zero if none.
	LastEmit() time.Time

	// Joystick returns the tracked control, nil if the model has none.
	Joystick() control.Control
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a tracker for the given joystick. A nil joystick yields a tracker
// whose methods do nothing.
//
// Parameters:
//   - joystick: the joystick control, may be nil
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the tracker
func NewTracker(joystick control.Control, options ...TrackerBuilderOption) Tracker {
	t := &trackerImpl{
		mu:        &sync.Mutex{},
		joystick:  joystick,
		maxRadius: DefaultMaxRadius,
		cooldown:  DefaultCooldown,
		clock:     common.SystemClock,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *trackerImpl) Begin(c control.Control) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.joystick == nil || c == nil || c != t.joystick {
		return false
	}
	t.dragging = true
	return true
}

func (t *trackerImpl) Drag(ray common.Ray) (input.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dragging || t.joystick == nil {
		return input.Event{}, false
	}
	hit, ok := ray.IntersectPlane(t.dragPlane())
	if !ok {
		return input.Event{}, false
	}
	return t.dragTo(ray.At(hit))
}

func (t *trackerImpl) DragTo(world mgl32.Vec3) (input.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dragging || t.joystick == nil {
		return input.Event{}, false
	}
	return t.dragTo(world)
}

func (t *trackerImpl) End() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dragging = false
	t.offset = mgl32.Vec3{}
	if t.joystick != nil {
		t.joystick.ResetTarget()
	}
}

func (t *trackerImpl) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dragging
}

func (t *trackerImpl) Offset() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

func (t *trackerImpl) LastEmit() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastEmit
}

func (t *trackerImpl) Joystick() control.Control {
	return t.joystick
}

// dragPlane is the horizontal plane through the joystick's rest position in world space.
func (t *trackerImpl) dragPlane() common.Plane {
	rest := mgl32.TransformCoordinate(t.joystick.RestPose().Position, t.joystick.ParentTransform())
	return common.NewPlane(mgl32.Vec3{0, 1, 0}, rest)
}

func (t *trackerImpl) dragTo(world mgl32.Vec3) (input.Event, bool) {
	rest := t.joystick.RestPose().Position
	offset := t.joystick.WorldToParent(world).Sub(rest)
	offset[1] = 0

	offset, saturated := common.ClampLength(offset, t.maxRadius)
	t.offset = offset
	t.joystick.SetTargetPosition(rest.Add(offset))

	if !saturated {
		return input.Event{}, false
	}
	now := t.clock()
	if !t.lastEmit.IsZero() && now.Sub(t.lastEmit) < t.cooldown {
		return input.Event{}, false
	}
	t.lastEmit = now

	dir := input.DirectionFromPlanar(offset.X(), offset.Z())
	ev := input.ActionEvent(input.JoystickAction(dir))
	t.logger.Debug("joystick direction", zap.String("action", ev.Name))
	return ev, true
}
