package bridge

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// LocalBuilderOption is a functional option for configuring a Local channel.
type LocalBuilderOption func(*localImpl)

// HubBuilderOption is a functional option for configuring a Hub.
type HubBuilderOption func(*hubImpl)

// ReceiverBuilderOption is a functional option for configuring a Receiver.
type ReceiverBuilderOption func(*receiverImpl)

// WithLocalLogger sets the logger of a Local channel.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - LocalBuilderOption: functional option to set the logger
func WithLocalLogger(logger *zap.Logger) LocalBuilderOption {
	return func(l *localImpl) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHubLogger sets the logger of a Hub.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - HubBuilderOption: functional option to set the logger
func WithHubLogger(logger *zap.Logger) HubBuilderOption {
	return func(h *hubImpl) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithQueueSize sets the per-client write queue length. Values below 1 are ignored.
//
// Parameters:
//   - n: the queue length
//
// Returns:
//   - HubBuilderOption: functional option to set the queue size
func WithQueueSize(n int) HubBuilderOption {
	return func(h *hubImpl) {
		if n > 0 {
			h.queueSize = n
		}
	}
}

// WithWriteTimeout sets the per-message write deadline. Zero disables the deadline.
//
// Parameters:
//   - d: the write timeout
//
// Returns:
//   - HubBuilderOption: functional option to set the write timeout
func WithWriteTimeout(d time.Duration) HubBuilderOption {
	return func(h *hubImpl) {
		h.writeTimeout = d
	}
}

// WithCheckOrigin sets the origin check used when upgrading connections.
//
// Parameters:
//   - check: returns true when the request origin is acceptable
//
// Returns:
//   - HubBuilderOption: functional option to set the origin check
func WithCheckOrigin(check func(r *http.Request) bool) HubBuilderOption {
	return func(h *hubImpl) {
		h.upgrader.CheckOrigin = check
	}
}

// WithReceiverLogger sets the logger of a Receiver.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ReceiverBuilderOption: functional option to set the logger
func WithReceiverLogger(logger *zap.Logger) ReceiverBuilderOption {
	return func(r *receiverImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDialer sets the websocket dialer used by a Receiver.
//
// Parameters:
//   - d: the dialer
//
// Returns:
//   - ReceiverBuilderOption: functional option to set the dialer
func WithDialer(d *websocket.Dialer) ReceiverBuilderOption {
	return func(r *receiverImpl) {
		if d != nil {
			r.dialer = d
		}
	}
}
