package book

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/activity"
	"github.com/abhisek/storybook/internal/navigation"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/ui/components"
	"github.com/abhisek/storybook/internal/ui/layout"
	"github.com/abhisek/storybook/internal/ui/theme"
)

const minBodyHeight = 3

func (s *BookScreen) View(width, height int) string {
	v := s.ctrl.View()
	pw := layout.PageWidth(width)

	if !v.Shown {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Opening the book..."))
	}

	ctrls := s.controls(v)
	cur, hasFocus := s.focused(ctrls)
	if !hasFocus {
		cur = control{zone: -1}
	}

	var bottom []string
	if panel := s.renderActivity(v, cur, pw); panel != "" {
		bottom = append(bottom, panel)
	}
	if line := renderFeedback(v, s.flash); line != "" {
		bottom = append(bottom, line)
	}
	bottom = append(bottom, s.renderNav(v, cur, pw))
	lower := strings.Join(bottom, "\n\n")

	bodyHeight := max(height-lipgloss.Height(lower)-3, minBodyHeight)
	body := s.renderBody(v, pw, bodyHeight)

	page := lipgloss.JoinVertical(lipgloss.Left,
		renderPageTitle(v, pw),
		"",
		body,
		"",
		lower,
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, page)
}

func renderPageTitle(v navigation.View, width int) string {
	num := theme.Hint.Render(fmt.Sprintf("Page %s of %d", v.Slide.Number(), v.Total))
	title := ""
	if v.Page != nil {
		title = theme.Title.Render(v.Page.Title)
	}
	gap := max(width-lipgloss.Width(num)-lipgloss.Width(title), 1)
	return title + strings.Repeat(" ", gap) + num
}

// renderBody draws the page markdown into the scrollable viewport. The
// rendered text is cached per displayed page and width, and the viewport
// returns to the top whenever a new page is shown.
func (s *BookScreen) renderBody(v navigation.View, width, height int) string {
	s.body.SetWidth(width)
	s.body.SetHeight(height)

	if s.bodyFor != v.Scroll || s.bodyWidth != width {
		s.body.SetContent(s.markdown(v, width))
		if s.bodyFor != v.Scroll {
			s.body.GotoTop()
		}
		s.bodyFor = v.Scroll
		s.bodyWidth = width
	}
	return s.body.View()
}

func (s *BookScreen) markdown(v navigation.View, width int) string {
	if v.Fallback != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("\n" + v.Fallback)
	}
	if v.Page == nil {
		return ""
	}
	if s.renderer == nil || s.rendererW != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width-2),
		)
		if err != nil {
			s.logger.Warn("markdown renderer unavailable", zap.Error(err))
			return theme.Body.Width(width).Render(v.Page.Body)
		}
		s.renderer = r
		s.rendererW = width
	}
	out, err := s.renderer.Render(v.Page.Body)
	if err != nil {
		s.logger.Warn("markdown render failed", zap.Int("slide", v.Index), zap.Error(err))
		return theme.Body.Width(width).Render(v.Page.Body)
	}
	return strings.Trim(out, "\n")
}

// renderActivity draws the board of the attached activity.
func (s *BookScreen) renderActivity(v navigation.View, cur control, width int) string {
	b := v.Board
	var parts []string
	if b.Prompt != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(b.Prompt))
	}
	if b.Toggle != "" {
		label := b.Toggle
		if b.Revealed {
			label = "✓ " + label
		}
		parts = append(parts, components.NewButton(label, cur.zone == zoneToggle, !b.Revealed).View())
	}
	if len(b.Choices) > 0 {
		parts = append(parts, renderChoices(b.Choices, v.Slide.Kind, cur))
	}
	if len(b.Sources) > 0 || len(b.Targets) > 0 {
		parts = append(parts, s.renderPairs(b, cur, width))
	}
	if len(b.Fields) > 0 {
		parts = append(parts, s.renderFields(v, cur, width))
	}
	if b.Meter != nil {
		parts = append(parts, components.NewProgressBar(b.Meter.Label, b.Meter.Count, b.Meter.Target, true, min(width, 48)).View())
	}
	if b.Action != "" {
		parts = append(parts, components.NewButton(b.Action, cur.zone == zoneAction, true).View())
	}
	return strings.Join(parts, "\n\n")
}

func renderChoices(items []activity.BoardItem, kind slides.Kind, cur control) string {
	var lines []string
	for i, it := range items {
		focused := cur.zone == zoneChoice && cur.index == i
		prefix := "  "
		if focused {
			prefix = "▸ "
		}
		mark := "○"
		if kind == slides.KindMultiSelect {
			mark = "[ ]"
		}
		if it.State == activity.ItemSelected {
			mark = "●"
			if kind == slides.KindMultiSelect {
				mark = "[x]"
			}
		}
		line := prefix + mark + " " + it.Label

		style := theme.Unselected
		switch {
		case it.State == activity.ItemDisabled:
			style = theme.Disabled
		case focused:
			style = theme.Selected
		case it.State == activity.ItemSelected:
			style = theme.Informative
		case it.State == activity.ItemLocked:
			style = theme.Locked
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

// renderPairs draws the drag sources on the left and drop targets on the
// right.
func (s *BookScreen) renderPairs(b activity.Board, cur control, width int) string {
	colWidth := max((width-4)/2, 12)

	var left []string
	for i, it := range b.Sources {
		focused := cur.zone == zoneSource && cur.index == i
		label := it.Label
		style := theme.Unselected
		switch {
		case it.State == activity.ItemLocked:
			label = "✓ " + label
			style = theme.Locked
		case it.ID == s.held:
			label = "✋ " + label
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		case focused:
			style = theme.Selected
		}
		left = append(left, pointer(focused)+style.Render(label))
	}

	var right []string
	for i, it := range b.Targets {
		focused := cur.zone == zoneTarget && cur.index == i
		label := it.Label
		style := theme.Unselected
		switch {
		case it.State == activity.ItemLocked:
			label = fmt.Sprintf("%s ← %s", it.Label, it.Filled)
			style = theme.Locked
		case focused:
			style = theme.Selected
		case s.held != "":
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		right = append(right, pointer(focused)+style.Width(colWidth-2).Render(label))
	}

	col := lipgloss.NewStyle().Width(colWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(strings.Join(left, "\n")),
		"    ",
		col.Render(strings.Join(right, "\n")),
	)
}

func pointer(focused bool) string {
	if focused {
		return theme.Selected.Render("▸ ")
	}
	return "  "
}

func (s *BookScreen) renderFields(v navigation.View, cur control, width int) string {
	var parts []string
	for i := range s.inputs {
		in := s.inputs[i]
		in.Model.SetWidth(max(width-8, 10))
		parts = append(parts, in.View())
	}
	if v.Phase != activity.PhaseComplete {
		parts = append(parts, components.NewButton("Check", cur.zone == zoneSubmit, true).View())
	}
	return strings.Join(parts, "\n")
}

// renderFeedback shows the flash notice, or else the latest outcome.
func renderFeedback(v navigation.View, flash string) string {
	if flash != "" {
		return theme.Hint.Render(flash)
	}
	o := v.Outcome
	if o.Message == "" {
		return ""
	}
	switch o.Status {
	case activity.StatusCorrect:
		return theme.Correct.Render("✓ " + o.Message)
	case activity.StatusIncorrect:
		return theme.Incorrect.Render("✗ " + o.Message)
	default:
		return theme.Informative.Render(o.Message)
	}
}

// renderNav draws Back, the page dots and Next.
func (s *BookScreen) renderNav(v navigation.View, cur control, width int) string {
	prev := components.NewButton("◀ Back", cur.zone == zonePrev, v.CanPrev)
	next := components.NewButton("Next ▶", cur.zone == zoneNext, v.CanNext)
	if v.Final {
		next = components.NewButton("The End", false, false)
	}

	dots := components.Dots(v.Dots)
	if v.Narration {
		listen := "♪ l to listen"
		if v.Narrating {
			listen = "♪ reading aloud..."
		}
		dots += "   " + theme.Hint.Render(listen)
	}
	if v.Busy {
		dots += "   " + theme.Hint.Render("turning...")
	}

	left := prev.View()
	right := next.View()
	middle := lipgloss.PlaceHorizontal(
		max(width-lipgloss.Width(left)-lipgloss.Width(right), lipgloss.Width(dots)),
		lipgloss.Center, dots)
	return lipgloss.JoinHorizontal(lipgloss.Center, left, middle, right)
}
