package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/page-indicator/internal/config"
	"github.com/iburimskiy/page-indicator/internal/indicator"
)

var backgroundColor = color.RGBA{R: 18, G: 20, B: 28, A: 255}

// Options configures the window host.
type Options struct {
	Width, Height int

	Color   color.Color
	Circles int
	Stroke  float64

	// Chime is played on every accepted change when set.
	Chime    *Chime
	Logger   logrus.FieldLogger
	// OnChange is called after the host has handled a change.
	OnChange func(int)
}

// Game hosts one indicator widget in an ebiten window. The screen is only
// redrawn when the widget asks for it.
type Game struct {
	width, height int

	widget *indicator.Widget
	canvas screenCanvas
	chime  *Chime
	log    logrus.FieldLogger
	notify func(int)

	// redraw scheduling
	dirty    bool
	redrawAt time.Time
	now      func() time.Time

	// input edge detection
	prevKey  map[ebiten.Key]bool
	touchIDs []ebiten.TouchID

	lastErr error
}

func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = config.WindowWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.WindowHeight
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	g := &Game{
		width:   opts.Width,
		height:  opts.Height,
		chime:   opts.Chime,
		log:     opts.Logger,
		notify:  opts.OnChange,
		dirty:   true,
		now:     time.Now,
		prevKey: map[ebiten.Key]bool{},
	}
	g.widget = indicator.New(
		indicator.WithColor(opts.Color),
		indicator.WithCircles(opts.Circles),
		indicator.WithStrokeWidth(opts.Stroke),
		indicator.WithInvalidator(g),
		indicator.WithOnChange(g.handleChange),
		indicator.WithLogger(opts.Logger),
	)

	x, y, w, h := g.widgetBounds()
	g.widget.SetOrigin(x, y)
	g.widget.SetSize(w, h)
	return g
}

// Widget exposes the hosted indicator.
func (g *Game) Widget() *indicator.Widget { return g.widget }

func (g *Game) widgetBounds() (x, y, w, h float64) {
	w = float64(g.width - 2*config.WidgetMarginX)
	h = float64(config.WidgetHeight)
	if h > float64(g.height) {
		h = float64(g.height)
	}
	return config.WidgetMarginX, (float64(g.height) - h) / 2, w, h
}

func (g *Game) handleChange(position int) {
	g.log.WithField("position", position).Info("indicator changed")
	if g.chime != nil {
		g.chime.Play(position)
	}
	if g.notify != nil {
		g.notify(position)
	}
}

// Invalidate marks the screen for redraw on the next frame.
func (g *Game) Invalidate() {
	g.dirty = true
}

// InvalidateAfter schedules a redraw, keeping the earliest pending request.
func (g *Game) InvalidateAfter(d time.Duration) {
	at := g.now().Add(d)
	if g.redrawAt.IsZero() || at.Before(g.redrawAt) {
		g.redrawAt = at
	}
}

func (g *Game) needsRedraw(now time.Time) bool {
	if g.dirty {
		return true
	}
	return !g.redrawAt.IsZero() && !now.Before(g.redrawAt)
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.widget.HandlePointerDown(float64(x), float64(y))
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.widget.HandlePointerDown(float64(x), float64(y))
	}

	return g.handleKeys(ebiten.IsKeyPressed)
}

// handleKeys applies keyboard edges for one tick. Every watched key's state
// is recorded each tick, even when an earlier key already acted.
func (g *Game) handleKeys(isPressed func(ebiten.Key) bool) error {
	justPressed := func(k ebiten.Key) bool {
		pressed := isPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	right := justPressed(ebiten.KeyArrowRight)
	left := justPressed(ebiten.KeyArrowLeft)
	space := justPressed(ebiten.KeySpace)
	var digits [9]bool
	for i := range digits {
		digits[i] = justPressed(ebiten.Key1 + ebiten.Key(i))
	}
	escape := justPressed(ebiten.KeyEscape)
	quit := justPressed(ebiten.KeyQ)

	switch {
	case right:
		g.widget.SetPosition(g.widget.Position() + 1)
	case left:
		g.widget.SetPosition(g.widget.Position() - 1)
	case space:
		g.widget.SetPosition((g.widget.Position() + 1) % g.widget.Circles())
	}
	for i, pressed := range digits {
		if pressed {
			g.widget.SetPosition(i)
		}
	}

	if escape || quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.now()
	if !g.needsRedraw(now) {
		return
	}
	g.dirty = false
	g.redrawAt = time.Time{}

	screen.Fill(backgroundColor)

	x, y, w, h := g.widgetBounds()
	g.canvas.dst = screen
	g.canvas.offsetX, g.canvas.offsetY = x, y
	g.widget.Render(&g.canvas, w, h)

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	s := fmt.Sprintf("Position %d/%d (%s) - click a circle, arrows/space/1-9 to move, Esc/Q to quit",
		g.widget.Position()+1, g.widget.Circles(), g.widget.Phase())
	if g.lastErr != nil {
		s += " | Error: " + g.lastErr.Error()
	}
	return s
}

// SetError shows err in the status line.
func (g *Game) SetError(err error) {
	g.lastErr = err
	g.dirty = true
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
