package bridge

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSurface struct {
	mu    sync.Mutex
	calls []Command
}

func (s *recordingSurface) record(c Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

func (s *recordingSurface) Calls() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Command, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *recordingSurface) StartConsoleUI()     { s.record(CommandStartConsoleUI) }
func (s *recordingSurface) CloseOverlay()       { s.record(CommandCloseOverlay) }
func (s *recordingSurface) MoveLeft()           { s.record(CommandMoveLeft) }
func (s *recordingSurface) MoveRight()          { s.record(CommandMoveRight) }
func (s *recordingSurface) ActivateActiveCard() { s.record(CommandActivateActiveCard) }

func TestDispatchCoversVocabulary(t *testing.T) {
	s := &recordingSurface{}
	for _, c := range Vocabulary() {
		require.NoError(t, Dispatch(s, c))
	}
	assert.Equal(t, Vocabulary(), s.Calls())

	err := Dispatch(s, Command("openSettings"))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestVocabularyVersionIsOrderIndependent(t *testing.T) {
	reversed := Vocabulary()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, VocabularyVersion(), computeVersion(reversed))
	assert.Len(t, VocabularyVersion(), 16)

	extended := append(Vocabulary(), Command("openSettings"))
	assert.NotEqual(t, VocabularyVersion(), computeVersion(extended))
}

func TestEnvelopeValidate(t *testing.T) {
	env := NewEnvelope(CommandMoveLeft)
	require.NoError(t, env.Validate())
	assert.NotEmpty(t, env.ID)

	stale := env
	stale.Version = "0000000000000000"
	assert.ErrorIs(t, stale.Validate(), ErrVocabularyMismatch)

	unknown := NewEnvelope(Command("jump"))
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownCommand)
}

func TestLocalPreservesOrder(t *testing.T) {
	s := &recordingSurface{}
	l := NewLocal(s)

	require.NoError(t, l.Post(CommandMoveRight))
	require.NoError(t, l.Post(CommandMoveRight))
	require.NoError(t, l.Post(CommandActivateActiveCard))
	assert.ErrorIs(t, l.Post(Command("jump")), ErrUnknownCommand)

	assert.Equal(t, []Command{CommandMoveRight, CommandMoveRight, CommandActivateActiveCard}, s.Calls())
}

func TestLocalWithoutSurfaceIsNoop(t *testing.T) {
	l := NewLocal(nil)
	assert.NoError(t, l.Post(CommandCloseOverlay))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHubDeliversEnvelopesInOrder(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	sent := []Command{CommandStartConsoleUI, CommandMoveRight, CommandMoveLeft, CommandActivateActiveCard}
	for _, c := range sent {
		require.NoError(t, hub.Post(c))
	}
	assert.ErrorIs(t, hub.Post(Command("jump")), ErrUnknownCommand)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for _, want := range sent {
		var env Envelope
		require.NoError(t, conn.ReadJSON(&env))
		assert.Equal(t, want, env.Action)
		assert.Equal(t, VocabularyVersion(), env.Version)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, hub.Post(CommandCloseOverlay))
}

func TestReceiverAppliesHubCommands(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	s := &recordingSurface{}
	r := NewReceiver(wsURL(srv), s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.Post(CommandMoveRight))
	require.NoError(t, hub.Post(CommandCloseOverlay))

	require.Eventually(t, func() bool { return len(s.Calls()) == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []Command{CommandMoveRight, CommandCloseOverlay}, s.Calls())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("receiver did not stop after cancel")
	}
}

func TestReceiverStopsCleanlyWhenHubCloses(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	r := NewReceiver(wsURL(srv), &recordingSurface{})
	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("receiver did not stop after the hub closed")
	}
	assert.Zero(t, hub.ClientCount())
}

func TestReceiverRejectsInvalidEnvelopes(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := &recordingSurface{}
	r := NewReceiver("ws://unused", s, WithReceiverLogger(zap.New(core)))

	stale := NewEnvelope(CommandMoveLeft)
	stale.Version = "ffffffffffffffff"
	assert.ErrorIs(t, r.Handle(stale), ErrVocabularyMismatch)
	assert.ErrorIs(t, r.Handle(NewEnvelope(Command("jump"))), ErrUnknownCommand)
	assert.NoError(t, r.Handle(NewEnvelope(CommandMoveLeft)))

	assert.Equal(t, []Command{CommandMoveLeft}, s.Calls())
	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("action", "jump")).Len())
}

func TestReceiverRunFailsWithoutHub(t *testing.T) {
	r := NewReceiver("ws://127.0.0.1:1/bridge", &recordingSurface{})
	err := r.Run(context.Background())
	assert.Error(t, err)
}
