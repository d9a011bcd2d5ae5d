package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type receiverImpl struct {
	url     string
	surface Surface
	dialer  *websocket.Dialer
	logger  *zap.Logger
	mu      *sync.Mutex
}

// Receiver runs on the UI side of an isolated bridge: it connects to a Hub and applies
// every valid envelope to a local Surface in arrival order.
type Receiver interface {
	// Run connects to the hub and dispatches envelopes until the context is cancelled
	// or the connection is closed by the peer.
	//
	// Parameters:
	//   - ctx: cancels the connection
	//
	// Returns:
	//   - error: a dial or read error; nil when ctx was cancelled
	Run(ctx context.Context) error

	// Handle validates one envelope and dispatches it to the surface. Invalid envelopes
	// are logged and reported but never fatal to the receive loop.
	//
	// Parameters:
	//   - env: the received envelope
	//
	// Returns:
	//   - error: ErrVocabularyMismatch or ErrUnknownCommand for rejected envelopes
	Handle(env Envelope) error
}

var _ Receiver = &receiverImpl{}

// NewReceiver creates a receiver that will dial the given websocket URL.
//
// Parameters:
//   - url: the hub URL, e.g. "ws://127.0.0.1:7777/bridge"
//   - surface: the UI surface commands are applied to
//   - options: functional options to configure the receiver
//
// Returns:
//   - Receiver: the receiver
func NewReceiver(url string, surface Surface, options ...ReceiverBuilderOption) Receiver {
	r := &receiverImpl{
		url:     url,
		surface: surface,
		dialer:  websocket.DefaultDialer,
		logger:  zap.NewNop(),
		mu:      &sync.Mutex{},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *receiverImpl) Run(ctx context.Context) error {
	conn, _, err := r.dialer.DialContext(ctx, r.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial bridge %s: %w", r.url, err)
	}
	r.logger.Info("connected to console bridge", zap.String("url", r.url))

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	})
	defer stop()
	defer conn.Close()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read bridge envelope: %w", err)
		}
		_ = r.Handle(env)
	}
}

func (r *receiverImpl) Handle(env Envelope) error {
	if err := env.Validate(); err != nil {
		if errors.Is(err, ErrVocabularyMismatch) {
			r.logger.Warn("rejected envelope from a different vocabulary", zap.String("id", env.ID), zap.Error(err))
		} else {
			r.logger.Warn("rejected unknown action", zap.String("id", env.ID), zap.String("action", string(env.Action)))
		}
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return Dispatch(r.surface, env.Action)
}
