package sortlist

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"dragsort.dev/dragsort/internal/engine"
	"dragsort.dev/dragsort/internal/geometry"
)

// Shadow spring tuning: soft enough to visibly trail the pointer, damped
// enough to never overshoot.
const (
	shadowSpringFrequency = 7.5
	shadowSpringDamping   = 1.0
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// Model is the bubbletea model for the drag-sort list. It doubles as the
// engine's Container and Surface; the engine never sees bubbletea.
type Model struct {
	rows   []*row
	eng    *engine.Engine
	zone   *zone.Manager
	styles Styles
	keys   keyMap
	help   help.Model

	title string
	top   int // view lines above the list (title block)

	width    int
	maxWidth int

	// clip is the engine's overflow-hidden request: translated rows are
	// truncated at the list width instead of widening the frame.
	clip bool

	placeholder *decoration
	shadow      *shadowState
	settle      *settleState

	ticking  bool
	quitting bool
	err      error
}

// NewModel creates a drag-sort list over items. A nil logger discards the
// engine's debug output.
func NewModel(items []Item, opts engine.Options, logger *slog.Logger) (*Model, error) {
	m := &Model{
		zone:   zone.New(),
		styles: DefaultStyles(),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}

	handleClass := opts.HandleClass
	if handleClass == "" {
		handleClass = engine.DefaultOptions().HandleClass
	}
	for i, item := range items {
		r := &row{
			id:    fmt.Sprintf("item-%d", i),
			label: item.Label,
		}
		r.grip = &handle{parent: r, class: handleClass}
		m.rows = append(m.rows, r)
	}
	m.layout()

	eng, err := engine.New(m, opts, logger)
	if err != nil {
		return nil, err
	}
	m.eng = eng
	eng.Start(m)
	return m, nil
}

// SetTitle sets an optional title block rendered above the list.
func (m *Model) SetTitle(title string) {
	m.title = title
	m.top = 0
	if title != "" {
		m.top = 2
	}
}

// SetStyles replaces the component's styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// Order returns the item labels in their current committed order.
func (m *Model) Order() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.label
	}
	return out
}

// Err returns the first fatal engine error encountered, if any.
func (m *Model) Err() error {
	return m.err
}

// layout recomputes every row's base rectangle: one line per row, stacked
// from the top of the list area.
func (m *Model) layout() {
	want := 20
	for _, r := range m.rows {
		if n := len([]rune(r.label)) + 4; n > want {
			want = n
		}
	}
	if m.maxWidth > 0 && want > m.maxWidth {
		want = m.maxWidth
	}
	m.width = want

	for i, r := range m.rows {
		r.base = geometry.Rect{
			X:      0,
			Y:      float64(i),
			Width:  float64(m.width),
			Height: 1,
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// Force any pending settle to commit so Order is final.
			m.eng.Destroy()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.maxWidth = msg.Width
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case frameMsg:
		m.stepFrame(frameInterval)
		if m.animating() {
			return m, m.frameTick()
		}
		m.ticking = false
		return m, nil
	}

	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, r := range m.rows {
			if !r.grip.prepared || !m.zone.Get(r.grip.ID()).InBounds(msg) {
				continue
			}
			target, ok := m.eng.TargetFor(r.grip.ID())
			if !ok {
				continue
			}
			if err := m.eng.DragStart(target, m.pointAt(msg)); err != nil {
				m.err = err
				return m, tea.Quit
			}
			return m, m.startTicking()
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.eng.Dragging() {
			m.eng.DragMove(m.pointAt(msg))
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.eng.Dragging() {
			if err := m.eng.DragEnd(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			return m, m.startTicking()
		}
		return m, nil
	}
	return m, nil
}

// pointAt converts a mouse event to list-local viewport coordinates. Cell
// centers land strictly inside row rectangles, which keeps the
// open-interval hit-testing exact at row borders.
func (m *Model) pointAt(msg tea.MouseMsg) geometry.Point {
	return geometry.Point{
		X: float64(msg.X) + 0.5,
		Y: float64(msg.Y-m.top) + 0.5,
	}
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// startTicking begins the frame loop unless one is already running.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.frameTick()
}

// animating reports whether anything still needs frame ticks.
func (m *Model) animating() bool {
	if m.eng.Dragging() || m.settle != nil || m.shadow != nil {
		return true
	}
	for _, r := range m.rows {
		if r.tween != nil {
			return true
		}
	}
	return false
}

// stepFrame advances every active animation by dt.
func (m *Model) stepFrame(dt time.Duration) {
	for _, r := range m.rows {
		if r.tween == nil {
			continue
		}
		r.offset = r.tween.Advance(dt)
		if r.tween.Done() {
			// Displaced rows stay at their target offset until the
			// commit resets them.
			r.tween = nil
		}
	}

	if m.shadow != nil {
		m.shadow.spring.Update(m.shadow.target)
	}

	if s := m.settle; s != nil {
		s.row.offset = s.twn.Advance(dt)
		if s.twn.Done() {
			m.settle = nil
			s.done()
		}
	}
}

// View implements tea.Model. Paint order is elevation: placeholder first,
// settled rows, the dragged row, the shadow on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	blank := strings.Repeat(" ", m.width)
	lines := make([]string, len(m.rows))
	for i := range lines {
		lines[i] = blank
	}

	paint := func(y int, s string) {
		if y >= 0 && y < len(lines) {
			lines[y] = s
		}
	}

	if p := m.placeholder; p != nil {
		y := cell(p.rect.Y + p.delta.Y)
		paint(y, m.styles.Placeholder.Render(strings.Repeat("┄", m.width)))
	}

	for _, r := range m.rows {
		if r.dragging {
			continue
		}
		paint(cell(r.base.Y+r.offset.Y), m.renderRow(r, m.styles.Row, cell(r.offset.X)))
	}

	for _, r := range m.rows {
		if r.dragging {
			paint(cell(r.base.Y+r.offset.Y), m.renderRow(r, m.styles.Dragging, cell(r.offset.X)))
		}
	}

	if s := m.shadow; s != nil {
		pos := s.spring.Pos()
		y := cell(s.rect.Y + pos.Y)
		line := m.styles.Shadow.Render(pad(handleGlyph+" "+s.label, m.width))
		paint(y, m.indent(line, cell(pos.X)))
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.title)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return m.zone.Scan(b.String())
}

// renderRow renders one row at a horizontal offset, grip first. The grip
// is marked as a hit zone only once the engine prepared it.
func (m *Model) renderRow(r *row, style lipgloss.Style, xOffset int) string {
	// The marked area is the glyph plus its trailing space, matching the
	// two-cell handle bounds.
	grip := m.styles.Handle.Render(handleGlyph + " ")
	if r.grip.prepared {
		grip = m.zone.Mark(r.grip.ID(), grip)
	}
	line := grip + style.Render(pad(r.label, m.width-2))
	return m.indent(line, xOffset)
}

// indent shifts a line right by x cells, clipping at the list width while
// the engine has overflow hidden.
func (m *Model) indent(line string, x int) string {
	if x > 0 {
		line = strings.Repeat(" ", x) + line
	}
	if m.clip {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// cell rounds a viewport coordinate to its terminal cell.
func cell(v float64) int {
	return int(math.Round(v))
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
