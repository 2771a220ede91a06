// Package tricks renders the trick catalog with each item's effective state.
package tricks

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/ui/layout"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

type rowKind int

const (
	rowPathHeader rowKind = iota
	rowItem
)

type row struct {
	kind rowKind
	path catalog.Path
	item engine.ItemView
}

// Screen lists every trick grouped by learning path.
type Screen struct {
	backend      screen.Backend
	rows         []row
	cursor       int
	scrollOffset int
	err          error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the trick list.
func New(backend screen.Backend) *Screen {
	s := &Screen{backend: backend}
	s.reload()
	for i, r := range s.rows {
		if r.kind == rowItem {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *Screen) reload() {
	var rows []row
	s.err = s.backend.View(func(e *engine.Engine) error {
		for _, p := range e.Catalog().Paths() {
			views, err := e.ItemStates(p.ID)
			if err != nil {
				return err
			}
			rows = append(rows, row{kind: rowPathHeader, path: p})
			for _, v := range views {
				rows = append(rows, row{kind: rowItem, path: p, item: v})
			}
		}
		return nil
	})
	s.rows = rows
	if s.cursor >= len(s.rows) {
		s.cursor = 0
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.RefreshMsg:
		s.reload()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextPath()
		case "enter":
			return s, s.selectItem()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return theme.Hint.Render("  could not load tricks: " + s.err.Error())
	}
	if len(s.rows) == 0 {
		return theme.Hint.Render("  the catalog is empty")
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		if r.kind == rowPathHeader {
			lines = append(lines, renderPathHeader(r.path, width))
			continue
		}
		lines = append(lines, renderItemRow(r.item, i == s.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) Title() string {
	return "Tricks"
}

// KeyHints returns the key binding hints for the footer.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Next path"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping path headers.
func (s *Screen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind == rowItem {
			s.cursor = next
			return
		}
	}
}

// nextPath jumps to the first item of the next path, wrapping to the top.
func (s *Screen) nextPath() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].path.ID
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowItem && s.rows[i].path.ID != current {
			s.cursor = i
			return
		}
	}
	s.cursor = 0
	s.moveCursor(1)
}

func (s *Screen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	if top > 0 && s.rows[top-1].kind == rowPathHeader {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *Screen) selectItem() tea.Cmd {
	if len(s.rows) == 0 || s.rows[s.cursor].kind != rowItem {
		return nil
	}
	detail := newDetail(s.backend, s.rows[s.cursor].item.Item.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderPathHeader(p catalog.Path, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(p.Name))
}

func renderItemRow(v engine.ItemView, selected bool, width int) string {
	tier := fmt.Sprintf("%-12s", v.Item.Tier.Label())

	nameWidth := width - 34
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := v.Item.Name
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	style := theme.StateStyle(string(v.State))
	cursor := "  "
	if selected {
		style = theme.Selected
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		v.State.Icon(),
		style.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		theme.Locked.Render(tier),
		style.Render(fmt.Sprintf("%-11s", v.State.Label())),
	)
}
