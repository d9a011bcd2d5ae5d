package bridge

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type localImpl struct {
	surface Surface
	logger  *zap.Logger
	mu      *sync.Mutex
}

// Local is a Channel that invokes an in-process Surface directly. Calls are serialized,
// so commands reach the surface in the order they were posted.
type Local interface {
	Channel
}

var _ Local = &localImpl{}

// NewLocal creates a Channel bound to an in-process surface.
//
// Parameters:
//   - surface: the UI surface to invoke
//   - options: functional options to configure the channel
//
// Returns:
//   - Local: the channel
func NewLocal(surface Surface, options ...LocalBuilderOption) Local {
	l := &localImpl{
		surface: surface,
		logger:  zap.NewNop(),
		mu:      &sync.Mutex{},
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *localImpl) Post(cmd Command) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !cmd.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if l.surface == nil {
		l.logger.Debug("no surface attached, dropping command", zap.String("action", string(cmd)))
		return nil
	}
	return Dispatch(l.surface, cmd)
}
