package ui

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Startup timeline, in seconds from StartConsoleUI.
const (
	LogoDelay       float32 = 0.1
	LogoFade        float32 = 0.5
	OverlayHoldEnd  float32 = 2.0
	OverlayFade     float32 = 1.0
	ContentOpenTime float32 = 0.3
)

// Stage is the startup sequence position of the surface.
type Stage int

const (
	// StageIdle is before StartConsoleUI has been received.
	StageIdle Stage = iota
	// StageSplash shows the startup overlay with the logo lighting up.
	StageSplash
	// StageFading fades the startup overlay out.
	StageFading
	// StageMain shows the carousel.
	StageMain
)

func (s Stage) String() string {
	switch s {
	case StageSplash:
		return "splash"
	case StageFading:
		return "fading"
	case StageMain:
		return "main"
	default:
		return "idle"
	}
}

// Card is one item of the carousel.
type Card struct {
	Title string `yaml:"title"`
	Link  string `yaml:"link"`
}

type surfaceImpl struct {
	mu *sync.Mutex

	cards   []Card
	visible int
	index   int
	logger  *zap.Logger
	onOpen  func(Card)

	stage   Stage
	elapsed float32

	logoAlpha    float32
	overlayAlpha float32
	logoTween    *gween.Tween
	overlayTween *gween.Tween

	contentOpen    bool
	contentLink    string
	contentOpacity float32
	contentTween   *gween.Tween
}

// Surface is the in-process reference UI: a paged carousel of cards, a content overlay
// that opens the active card, and a timed startup sequence. It implements bridge.Surface
// and is safe to drive from a bridge receiver goroutine while Update runs elsewhere.
type Surface interface {
	bridge.Surface

	// Update advances the startup sequence and the overlay fades.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the last update
	Update(dt float32)

	// Stage returns the startup sequence position.
	Stage() Stage

	// Index returns the carousel position, which is also the active card.
	Index() int

	// MaxIndex returns the last reachable carousel position.
	MaxIndex() int

	// ActiveCard returns the highlighted card.
	//
	// Returns:
	//   - Card: the active card
	//   - bool: false if there are no cards
	ActiveCard() (Card, bool)

	// ContentOpen reports whether the content overlay is showing a card.
	ContentOpen() bool

	// ContentLink returns the link of the open card, empty when closed.
	ContentLink() string

	// LogoAlpha returns the startup logo opacity in [0, 1].
	LogoAlpha() float32

	// OverlayAlpha returns the startup overlay opacity in [0, 1].
	OverlayAlpha() float32

	// ContentOpacity returns the content overlay opacity in [0, 1].
	ContentOpacity() float32
}

var _ Surface = &surfaceImpl{}

// NewSurface creates the reference UI surface.
//
// Parameters:
//   - options: functional options to configure the surface
//
// Returns:
//   - Surface: the surface
func NewSurface(options ...SurfaceBuilderOption) Surface {
	s := &surfaceImpl{
		mu:      &sync.Mutex{},
		visible: 3,
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *surfaceImpl) StartConsoleUI() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stage = StageSplash
	s.elapsed = 0
	s.logoAlpha = 0
	s.overlayAlpha = 1
	s.logoTween = nil
	s.overlayTween = nil
	s.closeContent()
	s.logger.Info("startup sequence started")
}

func (s *surfaceImpl) CloseOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeContent()
}

// closeContent hides the content overlay and clears the open guard. Caller holds mu.
func (s *surfaceImpl) closeContent() {
	if s.contentOpen {
		s.logger.Info("content closed", zap.String("link", s.contentLink))
	}
	s.contentOpen = false
	s.contentLink = ""
	s.contentOpacity = 0
	s.contentTween = nil
}

func (s *surfaceImpl) MoveLeft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index > 0 {
		s.index--
	}
}

func (s *surfaceImpl) MoveRight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < s.maxIndex() {
		s.index++
	}
}

func (s *surfaceImpl) ActivateActiveCard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contentOpen || s.index >= len(s.cards) {
		return
	}
	card := s.cards[s.index]
	if card.Link == "" {
		return
	}
	s.contentOpen = true
	s.contentLink = card.Link
	s.contentOpacity = 0
	s.contentTween = gween.New(0, 1, ContentOpenTime, ease.OutQuad)
	s.logger.Info("content opened", zap.String("title", card.Title), zap.String("link", card.Link))

	if s.onOpen != nil {
		s.onOpen(card)
	}
}

func (s *surfaceImpl) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contentTween != nil {
		v, done := s.contentTween.Update(dt)
		s.contentOpacity = v
		if done {
			s.contentTween = nil
		}
	}

	if s.stage == StageIdle || s.stage == StageMain {
		return
	}
	s.elapsed += dt

	if s.logoTween == nil && s.elapsed >= LogoDelay {
		s.logoTween = gween.New(0, 1, LogoFade, ease.InOutQuad)
		// Carry the time already spent past the delay into the tween.
		s.logoAlpha, _ = s.logoTween.Update(s.elapsed - LogoDelay)
	} else if s.logoTween != nil {
		s.logoAlpha, _ = s.logoTween.Update(dt)
	}

	if s.stage == StageSplash && s.elapsed >= OverlayHoldEnd {
		s.stage = StageFading
		s.overlayTween = gween.New(1, 0, OverlayFade, ease.Linear)
		s.overlayAlpha, _ = s.overlayTween.Update(s.elapsed - OverlayHoldEnd)
	} else if s.stage == StageFading {
		s.overlayAlpha, _ = s.overlayTween.Update(dt)
	}

	if s.stage == StageFading && s.elapsed >= OverlayHoldEnd+OverlayFade {
		s.stage = StageMain
		s.overlayAlpha = 0
		s.logger.Info("main ui shown")
	}
}

func (s *surfaceImpl) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

func (s *surfaceImpl) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *surfaceImpl) MaxIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxIndex()
}

func (s *surfaceImpl) ActiveCard() (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.cards) {
		return Card{}, false
	}
	return s.cards[s.index], true
}

func (s *surfaceImpl) ContentOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentOpen
}

func (s *surfaceImpl) ContentLink() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentLink
}

func (s *surfaceImpl) LogoAlpha() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoAlpha
}

func (s *surfaceImpl) OverlayAlpha() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlayAlpha
}

func (s *surfaceImpl) ContentOpacity() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentOpacity
}

func (s *surfaceImpl) maxIndex() int {
	return max(len(s.cards)-s.visible, 0)
}
