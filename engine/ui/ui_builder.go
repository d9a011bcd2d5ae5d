package ui

import (
	"go.uber.org/zap"
)

// SurfaceBuilderOption is a functional option for configuring a Surface.
type SurfaceBuilderOption func(*surfaceImpl)

// WithCards sets the carousel content.
//
// Parameters:
//   - cards: the cards in display order
//
// Returns:
//   - SurfaceBuilderOption: option function to apply
func WithCards(cards ...Card) SurfaceBuilderOption {
	return func(s *surfaceImpl) {
		s.cards = append([]Card(nil), cards...)
	}
}

// WithVisibleCards sets how many cards fit in the carousel viewport. Values below 1 are ignored.
//
// Parameters:
//   - n: the number of visible cards
//
// Returns:
//   - SurfaceBuilderOption: option function to apply
func WithVisibleCards(n int) SurfaceBuilderOption {
	return func(s *surfaceImpl) {
		if n > 0 {
			s.visible = n
		}
	}
}

// WithOnOpen sets a callback invoked when a card's content is opened.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - SurfaceBuilderOption: option function to apply
func WithOnOpen(fn func(Card)) SurfaceBuilderOption {
	return func(s *surfaceImpl) {
		s.onOpen = fn
	}
}

// WithLogger sets the surface's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - SurfaceBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SurfaceBuilderOption {
	return func(s *surfaceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}
