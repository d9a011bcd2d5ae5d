package bridge

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Command is one entry of the fixed vocabulary the console sends to the UI surface.
type Command string

const (
	CommandStartConsoleUI     Command = "startConsoleUI"
	CommandCloseOverlay       Command = "closeOverlay"
	CommandMoveLeft           Command = "moveLeft"
	CommandMoveRight          Command = "moveRight"
	CommandActivateActiveCard Command = "activateActiveCard"
)

var (
	// ErrUnknownCommand is returned when a command outside the vocabulary is posted or received.
	ErrUnknownCommand = errors.New("unknown bridge command")
	// ErrVocabularyMismatch is returned when an envelope was built against a different vocabulary.
	ErrVocabularyMismatch = errors.New("bridge vocabulary version mismatch")
)

var vocabulary = []Command{
	CommandStartConsoleUI,
	CommandCloseOverlay,
	CommandMoveLeft,
	CommandMoveRight,
	CommandActivateActiveCard,
}

var vocabularyVersion = computeVersion(vocabulary)

// Vocabulary returns a copy of the command vocabulary in declaration order.
//
// Returns:
//   - []Command: all known commands
func Vocabulary() []Command {
	out := make([]Command, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// VocabularyVersion returns a stable fingerprint of the command vocabulary. Both ends of a
// bridge compare it so that a renamed or added command is detected instead of silently dropped.
//
// Returns:
//   - string: a 16 character hex digest
func VocabularyVersion() string {
	return vocabularyVersion
}

// Known reports whether the command is part of the vocabulary.
func (c Command) Known() bool {
	for _, k := range vocabulary {
		if k == c {
			return true
		}
	}
	return false
}

func computeVersion(cmds []Command) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = string(c)
	}
	sort.Strings(names)
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(names, "\n")))
}

// Surface is the capability set the UI surface must expose. Handlers must be idempotent
// with respect to their own state: ActivateActiveCard is a no-op while content is open.
type Surface interface {
	// StartConsoleUI starts the intro/startup sequence.
	StartConsoleUI()

	// CloseOverlay closes any open content overlay.
	CloseOverlay()

	// MoveLeft shifts the paged list one item to the left.
	MoveLeft()

	// MoveRight shifts the paged list one item to the right.
	MoveRight()

	// ActivateActiveCard opens the currently highlighted item.
	ActivateActiveCard()
}

// Channel is a fire-and-forget outbound path from the console to a UI surface.
type Channel interface {
	// Post delivers a command to the UI surface without waiting for acknowledgment.
	//
	// Parameters:
	//   - cmd: the command to deliver
	//
	// Returns:
	//   - error: ErrUnknownCommand if cmd is not in the vocabulary
	Post(cmd Command) error
}

// Dispatch invokes the surface capability matching cmd.
//
// Parameters:
//   - s: the surface to invoke
//   - cmd: the command to dispatch
//
// Returns:
//   - error: ErrUnknownCommand if cmd is not in the vocabulary
func Dispatch(s Surface, cmd Command) error {
	switch cmd {
	case CommandStartConsoleUI:
		s.StartConsoleUI()
	case CommandCloseOverlay:
		s.CloseOverlay()
	case CommandMoveLeft:
		s.MoveLeft()
	case CommandMoveRight:
		s.MoveRight()
	case CommandActivateActiveCard:
		s.ActivateActiveCard()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}

// Envelope is the wire form of a command sent across an isolated bridge.
type Envelope struct {
	ID      string  `json:"id"`
	Version string  `json:"v"`
	Action  Command `json:"action"`
}

// NewEnvelope wraps a command with a fresh ID and the current vocabulary version.
//
// Parameters:
//   - cmd: the command to wrap
//
// Returns:
//   - Envelope: the envelope ready to be encoded
func NewEnvelope(cmd Command) Envelope {
	return Envelope{
		ID:      uuid.NewString(),
		Version: vocabularyVersion,
		Action:  cmd,
	}
}

// Validate checks the envelope's vocabulary version and action.
//
// Returns:
//   - error: ErrVocabularyMismatch or ErrUnknownCommand when the envelope cannot be dispatched
func (e Envelope) Validate() error {
	if e.Version != vocabularyVersion {
		return fmt.Errorf("%w: got %q, want %q", ErrVocabularyMismatch, e.Version, vocabularyVersion)
	}
	if !e.Action.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, e.Action)
	}
	return nil
}
