package page

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// FPS is the animation frame rate of smooth scrolling.
const FPS = 60

// FrameInterval is the delay between two Step calls.
const FrameInterval = time.Second / FPS

// Scroller animates a scroll position toward a target line with a critically
// damped spring. Retargeting mid-flight keeps the current velocity.
type Scroller struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
}

func NewScroller() *Scroller {
	return &Scroller{
		spring: harmonica.NewSpring(harmonica.FPS(FPS), 8.0, 1.0),
	}
}

// ScrollTo starts (or redirects) the animation toward line.
func (s *Scroller) ScrollTo(line int) {
	s.target = float64(line)
	s.active = s.pos != s.target || s.vel != 0
}

// Jump moves to line immediately, stopping any animation. Manual scrolling
// uses it to keep the spring in sync with the viewport.
func (s *Scroller) Jump(line int) {
	s.pos = float64(line)
	s.target = s.pos
	s.vel = 0
	s.active = false
}

// Step advances one frame and returns the line to display.
func (s *Scroller) Step() (line int, done bool) {
	if !s.active {
		return s.Position(), true
	}

	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos = s.target
		s.vel = 0
		s.active = false
	}
	return s.Position(), !s.active
}

func (s *Scroller) Active() bool {
	return s.active
}

func (s *Scroller) Position() int {
	return int(math.Round(s.pos))
}

func (s *Scroller) Target() int {
	return int(s.target)
}
