package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/core/widgets"
	"github.com/jask/soldash/internal/service"
)

// ComposePane writes a new board post.
type ComposePane struct {
	core.BasePane
	deps     *Deps
	area     textarea.Model
	limit    int
	focused  bool
	inFlight bool
}

func NewComposePane(spec core.PaneSpec, deps *Deps) *ComposePane {
	limit := deps.Config.Board.MaxLength
	if limit <= 0 {
		limit = service.DefaultMaxMessageLength
	}
	area := textarea.New()
	area.Placeholder = "What's happening on devnet?"
	area.CharLimit = limit
	area.ShowLineNumbers = false
	area.Prompt = ""
	area.SetHeight(4)
	return &ComposePane{BasePane: core.BasePaneFrom(spec), deps: deps, area: area, limit: limit}
}

func (p *ComposePane) CapturingInput() bool { return p.focused && p.deps.connected() }

// InFlight reports whether a post is pending.
func (p *ComposePane) InFlight() bool { return p.inFlight }

// Text returns the draft.
func (p *ComposePane) Text() string { return p.area.Value() }

// SetText replaces the draft.
func (p *ComposePane) SetText(s string) { p.area.SetValue(s) }

func (p *ComposePane) OnFocus() tea.Cmd {
	p.focused = true
	return p.area.Focus()
}

func (p *ComposePane) OnBlur() tea.Cmd {
	p.focused = false
	p.area.Blur()
	return nil
}

func (p *ComposePane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.ActionMsg:
		if msg.Action == "post" {
			return p.post()
		}
		return nil
	case postDoneMsg:
		p.inFlight = false
		if msg.err != nil {
			if quietError(msg.err) {
				return nil
			}
			return failCmd("Post", msg.err)
		}
		p.area.Reset()
		return core.StatusCmd("Message posted")
	case tea.KeyMsg:
		if !p.focused || !p.deps.connected() {
			return nil
		}
		var cmd tea.Cmd
		p.area, cmd = p.area.Update(msg)
		return cmd
	}
	return nil
}

func (p *ComposePane) post() tea.Cmd {
	author, ok := p.deps.identity()
	if !ok || p.inFlight {
		return nil
	}
	text := p.area.Value()
	if err := p.deps.Board.Validate(text); err != nil {
		if quietError(err) {
			return nil
		}
		return failCmd("Post", err)
	}
	p.inFlight = true
	d := p.deps
	now := d.now()
	return func() tea.Msg {
		post, err := d.Board.Post(d.context(), author, text, now)
		return postDoneMsg{post: post, err: err}
	}
}

func (p *ComposePane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	if !p.deps.connected() {
		return widgets.Pane{Title: p.PaneTitle, Height: height, Content: placeholder(contentWidth), Selected: selected, Focused: focused}.Render(width, height)
	}
	p.area.SetWidth(contentWidth)
	p.area.SetHeight(max(1, height-5))
	count := utf8.RuneCountInString(p.area.Value())
	counter := mutedStyle.Render(fmt.Sprintf("%d/%d", count, p.limit))
	if count >= p.limit {
		counter = warnStyle.Render(fmt.Sprintf("%d/%d", count, p.limit))
	}
	status := counter
	if p.inFlight {
		status = warnStyle.Render("Posting…") + "  " + counter
	}
	hint := "enter focus"
	if focused {
		hint = "ctrl+s post · esc done"
	}
	content := p.area.View() + "\n" + status
	return widgets.Pane{Title: p.PaneTitle, Height: height, Content: content, Hint: hint, Selected: selected, Focused: focused}.Render(width, height)
}

// BoardPane lists posts newest first.
type BoardPane struct {
	core.BasePane
	deps    *Deps
	posts   []service.MessagePost
	offset  int
	focused bool
}

func NewBoardPane(spec core.PaneSpec, deps *Deps) *BoardPane {
	return &BoardPane{BasePane: core.BasePaneFrom(spec), deps: deps}
}

func (p *BoardPane) Init() tea.Cmd {
	d := p.deps
	return func() tea.Msg {
		posts, err := d.Board.List(d.context())
		return boardLoadedMsg{posts: posts, err: err}
	}
}

func (p *BoardPane) OnFocus() tea.Cmd {
	p.focused = true
	return nil
}

func (p *BoardPane) OnBlur() tea.Cmd {
	p.focused = false
	return nil
}

func (p *BoardPane) scroll(delta int) {
	p.offset = min(max(0, p.offset+delta), max(0, len(p.posts)-1))
}

// Posts returns the listed posts, newest first.
func (p *BoardPane) Posts() []service.MessagePost { return p.posts }

func (p *BoardPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.err != nil {
			return failCmd("Load messages", msg.err)
		}
		p.posts = msg.posts
	case postDoneMsg:
		if msg.err == nil {
			p.posts = append([]service.MessagePost{msg.post}, p.posts...)
			p.offset = 0
		}
	case core.ActionMsg:
		switch msg.Action {
		case "scroll-down":
			p.scroll(1)
		case "scroll-up":
			p.scroll(-1)
		}
	case tea.KeyMsg:
		if !p.focused {
			return nil
		}
		switch msg.String() {
		case "down":
			p.scroll(1)
		case "up":
			p.scroll(-1)
		}
	}
	return nil
}

var authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)

func (p *BoardPane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	title := fmt.Sprintf("%s (%d)", p.PaneTitle, len(p.posts))
	if !p.deps.connected() {
		return widgets.Pane{Title: title, Height: height, Content: placeholder(contentWidth), Selected: selected, Focused: focused}.Render(width, height)
	}
	if len(p.posts) == 0 {
		return widgets.Pane{Title: title, Height: height, Content: mutedStyle.Render("No messages yet."), Selected: selected, Focused: focused}.Render(width, height)
	}
	wrap := lipgloss.NewStyle().Width(contentWidth)
	lines := make([]string, 0, len(p.posts)*3)
	for _, post := range p.posts[min(p.offset, len(p.posts)-1):] {
		header := authorStyle.Render(post.Author) + mutedStyle.Render("  "+post.CreatedAt.Local().Format("Jan 2 15:04"))
		lines = append(lines, ansi.Truncate(header, contentWidth, "…"))
		lines = append(lines, strings.Split(wrap.Render(textStyle.Render(post.Content)), "\n")...)
		lines = append(lines, "")
	}
	hint := ""
	if focused {
		hint = "j/k scroll · esc done"
	}
	return widgets.Pane{Title: title, Height: height, Content: strings.Join(lines, "\n"), Hint: hint, Selected: selected, Focused: focused}.Render(width, height)
}
