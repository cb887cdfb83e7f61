// Package builder assembles decks slide by slide from high-level elements
// (titles, body text, metric cards). It backs the agent tools.
package builder

import (
	"errors"
	"fmt"
	"sync"

	"github.com/christineastoria/custom-slide-annotation/deck"
	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/models"
)

var (
	ErrNoSlide         = errors.New("no slide available")
	ErrSlideOutOfRange = errors.New("slide number out of range")
	ErrEmptyDeck       = errors.New("no slides added to presentation")
	ErrFinalized       = errors.New("presentation already finalized")
)

// Session is one deck under construction. All methods are safe for
// concurrent use; calls on the same session are serialized.
type Session struct {
	mu        sync.Mutex
	title     string
	doc       models.Document
	current   int // index into doc.Slides, -1 when none is selected
	shapeSeq  int
	finalized bool
	output    []byte
	logger    func(string)
}

// NewSession creates an empty 16:9 deck (13.333in x 7.5in).
func NewSession(title string) *Session {
	s := &Session{}
	s.reset(title)
	return s
}

// SetLogger sets the function that receives session log lines.
func (s *Session) SetLogger(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = fn
}

func (s *Session) log(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger(fmt.Sprintf(format, args...))
	}
}

func (s *Session) reset(title string) {
	s.title = title
	s.doc = models.Document{
		Width:  models.DefaultWidth,
		Height: models.DefaultHeight,
		Slides: []models.Slide{},
	}
	s.current = -1
	s.shapeSeq = 0
	s.finalized = false
	s.output = nil
}

// Restart begins a new deck named title. It refuses, returning false, while
// the current deck has slides and has not been finalized.
func (s *Session) Restart(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.doc.Slides) > 0 && !s.finalized {
		return false
	}
	s.reset(title)
	s.log("[BUILDER] created presentation %q", title)
	return true
}

// Title returns the deck title.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SlideCount returns the number of slides.
func (s *Session) SlideCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doc.Slides)
}

// CurrentSlide returns the 1-based number of the selected slide, or 0.
func (s *Session) CurrentSlide() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current + 1
}

// AddSlide appends a blank slide and selects it. An invalid background
// color falls back to the default. Returns the 1-based slide number.
func (s *Session) AddSlide(background string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return 0, ErrFinalized
	}
	idx := len(s.doc.Slides)
	s.doc.Slides = append(s.doc.Slides, models.Slide{
		ID:              fmt.Sprintf("slide-%d", idx),
		Index:           idx,
		BackgroundColor: hexcolor.Normalize(background, hexcolor.DefaultBackground),
		Shapes:          []models.Shape{},
	})
	s.current = idx
	s.log("[BUILDER] added slide %d", idx+1)
	return idx + 1, nil
}

// SetCurrentSlide selects slide n (1-based).
func (s *Session) SetCurrentSlide(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return ErrFinalized
	}
	return s.selectSlide(n)
}

func (s *Session) selectSlide(n int) error {
	if n < 1 || n > len(s.doc.Slides) {
		return fmt.Errorf("%w: %d (have %d slides)", ErrSlideOutOfRange, n, len(s.doc.Slides))
	}
	s.current = n - 1
	return nil
}

// target resolves the slide an element goes to. A non-nil slide number
// selects that slide first. Callers hold s.mu.
func (s *Session) target(slide *int) (*models.Slide, int, error) {
	if s.finalized {
		return nil, 0, ErrFinalized
	}
	if slide != nil {
		if err := s.selectSlide(*slide); err != nil {
			return nil, 0, err
		}
	}
	if s.current < 0 || s.current >= len(s.doc.Slides) {
		return nil, 0, ErrNoSlide
	}
	return &s.doc.Slides[s.current], s.current + 1, nil
}

func (s *Session) nextShapeID() string {
	s.shapeSeq++
	return fmt.Sprintf("shape-%d", s.shapeSeq)
}

// Document returns a snapshot of the deck in the canvas model.
func (s *Session) Document() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Finalize renders the deck and closes the session for edits.
func (s *Session) Finalize() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return s.output, nil
	}
	if len(s.doc.Slides) == 0 {
		return nil, ErrEmptyDeck
	}
	data, err := deck.NewWriter(deck.Options{Logger: s.logger}).Write(&s.doc)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize presentation: %w", err)
	}
	s.finalized = true
	s.output = data
	s.log("[BUILDER] finalized %q: %d slides, %d bytes", s.title, len(s.doc.Slides), len(data))
	return data, nil
}

// Finalized reports whether Finalize has succeeded.
func (s *Session) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// Output returns the bytes produced by Finalize, or nil.
func (s *Session) Output() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}
