package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"go.uber.org/zap"
)

// Button names with a fixed binding in the default route table.
const (
	ButtonA     = "Button_A"
	ButtonB     = "Button_B"
	ButtonHome  = "Button_Home"
	ButtonStart = "Button_Start"
)

// DefaultRoutes returns the action-to-command bindings of the console. Button bindings
// fire on the pressed phase only.
//
// Returns:
//   - map[string]bridge.Command: action name to command
func DefaultRoutes() map[string]bridge.Command {
	return map[string]bridge.Command{
		ButtonA:             bridge.CommandActivateActiveCard,
		ButtonB:             bridge.CommandCloseOverlay,
		ButtonHome:          bridge.CommandCloseOverlay,
		ButtonStart:         bridge.CommandStartConsoleUI,
		ActionDpadLeft:      bridge.CommandMoveLeft,
		ActionJoystickLeft:  bridge.CommandMoveLeft,
		ActionDpadRight:     bridge.CommandMoveRight,
		ActionJoystickRight: bridge.CommandMoveRight,
	}
}

func directionalActions() []string {
	return []string{
		ActionDpadRight, ActionDpadLeft, ActionDpadUp, ActionDpadDown,
		ActionJoystickRight, ActionJoystickLeft, ActionJoystickUp, ActionJoystickDown,
	}
}

type routerImpl struct {
	channel bridge.Channel
	routes  map[string]bridge.Command
	known   map[string]struct{}
	logger  *zap.Logger
	mu      *sync.Mutex
}

// Router maps input events to bridge commands and posts them to the UI surface.
type Router interface {
	// Route dispatches an event. Unbound but known actions are logged at debug level;
	// unknown actions are logged as warnings. Neither is an error.
	//
	// Parameters:
	//   - ev: the event to route
	//
	// Returns:
	//   - bridge.Command: the command that was posted, if any
	//   - bool: true if a command was posted
	Route(ev Event) (bridge.Command, bool)

	// AddKnown marks action names as expected even though they have no binding,
	// e.g. every button discovered in the scene.
	//
	// Parameters:
	//   - names: the action names
	AddKnown(names ...string)

	// Known reports whether an action name is bound or registered as known.
	//
	// Parameters:
	//   - name: the action name
	//
	// Returns:
	//   - bool: true if the router recognises the name
	Known(name string) bool
}

var _ Router = &routerImpl{}

// NewRouter creates a router posting to the given channel with the default routes.
//
// Parameters:
//   - channel: the outbound bridge channel
//   - options: functional options to configure the router
//
// Returns:
//   - Router: the router
func NewRouter(channel bridge.Channel, options ...RouterBuilderOption) Router {
	r := &routerImpl{
		channel: channel,
		routes:  DefaultRoutes(),
		known:   make(map[string]struct{}),
		logger:  zap.NewNop(),
		mu:      &sync.Mutex{},
	}
	for _, option := range options {
		option(r)
	}
	for _, name := range directionalActions() {
		r.known[name] = struct{}{}
	}
	for name := range r.routes {
		r.known[name] = struct{}{}
	}
	return r
}

func (r *routerImpl) Route(ev Event) (bridge.Command, bool) {
	r.mu.Lock()
	cmd, bound := r.routes[ev.Name]
	_, known := r.known[ev.Name]
	r.mu.Unlock()

	if !known {
		r.logger.Warn("unknown action", zap.String("action", ev.Name), zap.Stringer("phase", ev.Phase))
		return "", false
	}
	if !bound || ev.Phase == PhaseReleased {
		r.logger.Debug("Clicked", zap.String("action", ev.Name), zap.Stringer("phase", ev.Phase))
		return "", false
	}
	if r.channel == nil {
		r.logger.Debug("no bridge channel, dropping command", zap.String("command", string(cmd)))
		return "", false
	}
	if err := r.channel.Post(cmd); err != nil {
		r.logger.Warn("failed to post command", zap.String("command", string(cmd)), zap.Error(err))
		return "", false
	}
	r.logger.Debug("posted command", zap.String("action", ev.Name), zap.String("command", string(cmd)))
	return cmd, true
}

func (r *routerImpl) AddKnown(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.known[n] = struct{}{}
	}
}

func (r *routerImpl) Known(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.known[name]
	return ok
}
