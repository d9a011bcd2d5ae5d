package ui

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{Title: string(rune('a' + i)), Link: "https://example.com/" + string(rune('a'+i))}
	}
	return cards
}

func TestSurface_CarouselBounds(t *testing.T) {
	s := NewSurface(WithCards(testCards(5)...), WithVisibleCards(3))
	assert.Equal(t, 2, s.MaxIndex())

	s.MoveLeft()
	assert.Equal(t, 0, s.Index())

	s.MoveRight()
	s.MoveRight()
	s.MoveRight()
	assert.Equal(t, 2, s.Index())

	card, ok := s.ActiveCard()
	require.True(t, ok)
	assert.Equal(t, "c", card.Title)

	s.MoveLeft()
	assert.Equal(t, 1, s.Index())
}

func TestSurface_FewerCardsThanVisible(t *testing.T) {
	s := NewSurface(WithCards(testCards(2)...), WithVisibleCards(4))
	assert.Equal(t, 0, s.MaxIndex())
	s.MoveRight()
	assert.Equal(t, 0, s.Index())
}

func TestSurface_NoCards(t *testing.T) {
	s := NewSurface()
	_, ok := s.ActiveCard()
	assert.False(t, ok)
	s.ActivateActiveCard()
	assert.False(t, s.ContentOpen())
}

func TestSurface_ActivateIsGuardedUntilClosed(t *testing.T) {
	var opened []Card
	s := NewSurface(WithCards(testCards(3)...), WithOnOpen(func(c Card) { opened = append(opened, c) }))

	s.ActivateActiveCard()
	s.ActivateActiveCard()
	require.Len(t, opened, 1)
	assert.True(t, s.ContentOpen())
	assert.Equal(t, "https://example.com/a", s.ContentLink())

	s.CloseOverlay()
	assert.False(t, s.ContentOpen())
	assert.Empty(t, s.ContentLink())

	s.ActivateActiveCard()
	assert.Len(t, opened, 2)
}

func TestSurface_ActivateWithoutLink(t *testing.T) {
	s := NewSurface(WithCards(Card{Title: "empty"}))
	s.ActivateActiveCard()
	assert.False(t, s.ContentOpen())
}

func TestSurface_ContentFadesIn(t *testing.T) {
	s := NewSurface(WithCards(testCards(1)...))
	s.ActivateActiveCard()
	assert.Zero(t, s.ContentOpacity())

	s.Update(ContentOpenTime / 2)
	mid := s.ContentOpacity()
	assert.Greater(t, mid, float32(0))
	assert.Less(t, mid, float32(1))

	s.Update(ContentOpenTime)
	assert.InDelta(t, 1, s.ContentOpacity(), 1e-5)
}

func TestSurface_StartHidesOpenContent(t *testing.T) {
	var opened []Card
	s := NewSurface(WithCards(testCards(2)...), WithOnOpen(func(c Card) { opened = append(opened, c) }))
	s.ActivateActiveCard()
	s.Update(0.125)
	require.Greater(t, s.ContentOpacity(), float32(0))

	s.StartConsoleUI()
	s.Update(0.5)
	assert.False(t, s.ContentOpen())
	assert.Empty(t, s.ContentLink())
	assert.Zero(t, s.ContentOpacity())

	// The guard is cleared, so the card opens again.
	s.ActivateActiveCard()
	assert.Len(t, opened, 2)
	assert.True(t, s.ContentOpen())
}

func TestSurface_StartupSequence(t *testing.T) {
	s := NewSurface()
	assert.Equal(t, StageIdle, s.Stage())

	s.StartConsoleUI()
	assert.Equal(t, StageSplash, s.Stage())
	assert.Equal(t, float32(1), s.OverlayAlpha())
	assert.Zero(t, s.LogoAlpha())

	s.Update(0.0625)
	assert.Zero(t, s.LogoAlpha())

	s.Update(0.9375)
	assert.InDelta(t, 1, s.LogoAlpha(), 1e-5)
	assert.Equal(t, StageSplash, s.Stage())

	s.Update(1)
	assert.Equal(t, StageFading, s.Stage())

	s.Update(0.5)
	alpha := s.OverlayAlpha()
	assert.Greater(t, alpha, float32(0))
	assert.Less(t, alpha, float32(1))

	s.Update(1)
	assert.Equal(t, StageMain, s.Stage())
	assert.Zero(t, s.OverlayAlpha())

	s.Update(5)
	assert.Equal(t, StageMain, s.Stage())
}

func TestSurface_DispatchFromBridge(t *testing.T) {
	s := NewSurface(WithCards(testCards(4)...), WithVisibleCards(2))

	require.NoError(t, bridge.Dispatch(s, bridge.CommandMoveRight))
	require.NoError(t, bridge.Dispatch(s, bridge.CommandActivateActiveCard))
	assert.Equal(t, "https://example.com/b", s.ContentLink())

	require.NoError(t, bridge.Dispatch(s, bridge.CommandCloseOverlay))
	assert.False(t, s.ContentOpen())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "idle", StageIdle.String())
	assert.Equal(t, "splash", StageSplash.String())
	assert.Equal(t, "fading", StageFading.String())
	assert.Equal(t, "main", StageMain.String())
}
