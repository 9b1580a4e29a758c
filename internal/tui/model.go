package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/chat"
	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/page"
)

// Rows taken by the nav bar and the help line.
const chromeHeight = 2

// Rows of widget chrome around the message viewport: border, title, input.
const widgetChrome = 4

// Message types for Bubble Tea
type scrollFrameMsg struct{}

type pageChangedMsg struct{}

type exchangeDoneMsg struct {
	exchange *chat.Exchange
	result   chat.Result
}

// Options configures a Model.
type Options struct {
	Document  *page.Document
	PagePath  string
	Transport chat.Transport
	Logger    *zap.Logger
	// Style is the glamour style name; empty picks one from the terminal.
	Style string
	// Changes, when set, reloads the page from PagePath on every receive.
	Changes <-chan struct{}
}

// Model is the portfolio program: a scrolling page with a nav bar and a
// chat widget.
type Model struct {
	ctx    context.Context
	logger *zap.Logger
	keys   *keyMap
	help   help.Model

	doc      *page.Document
	layout   *page.Layout
	pagePath string
	style    string
	changes  <-chan struct{}
	pageView viewport.Model
	scroller *page.Scroller
	navIndex int
	// animating is set while a frame tick is outstanding.
	animating bool

	widget     *chatView
	controller *chat.Controller
	spinner    spinner.Model
	spinning   bool
	pending    int
	queued     []tea.Cmd

	width  int
	height int
	ready  bool
}

// New builds the model and binds the chat controller to its keys.
func New(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		ctx:      ctx,
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		doc:      opts.Document,
		pagePath: opts.PagePath,
		style:    opts.Style,
		changes:  opts.Changes,
		pageView: viewport.New(80, 20),
		scroller: page.NewScroller(),
		widget:   newChatView(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(statusStyle),
		),
	}

	m.controller = chat.NewController(m.widget, opts.Transport, logger)
	m.controller.Bind(m.keys, m.enqueue)
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		wasOpen := m.widget.open
		if m.keys.fire(msg, m.widget.open) {
			if wasOpen != m.widget.open {
				m.resize()
			}
			cmds = append(cmds, m.widget.takeFocusCmd())
			cmds = append(cmds, m.drain()...)
			return m, tea.Batch(cmds...)
		}
		if m.widget.open {
			var cmd tea.Cmd
			if key.Matches(msg, m.keys.History) {
				m.widget.messages, cmd = m.widget.messages.Update(msg)
				return m, cmd
			}
			m.widget.input, cmd = m.widget.input.Update(msg)
			return m, cmd
		}
		return m, m.handlePageKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		if m.overWidget(msg.Y) {
			m.widget.messages, cmd = m.widget.messages.Update(msg)
			return m, cmd
		}
		m.pageView, cmd = m.pageView.Update(msg)
		m.scroller.Jump(m.pageView.YOffset)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.renderPage()
		m.resize()

	case scrollFrameMsg:
		line, done := m.scroller.Step()
		m.pageView.SetYOffset(line)
		if done {
			m.animating = false
			return m, nil
		}
		return m, frameTick()

	case exchangeDoneMsg:
		msg.exchange.Finish(msg.result)
		m.pending--

	case spinner.TickMsg:
		if m.pending == 0 {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageChangedMsg:
		m.reloadPage()
		return m, m.waitForChange()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	parts := []string{m.navView(), m.pageView.View()}
	if m.widget.open {
		parts = append(parts, m.widgetView())
	}
	parts = append(parts, m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// enqueue is the chat.Runner for the TUI. The network call becomes a
// command and the result comes back through Update as exchangeDoneMsg.
func (m *Model) enqueue(e *chat.Exchange) {
	ctx := m.ctx
	m.pending++
	m.queued = append(m.queued, func() tea.Msg {
		return exchangeDoneMsg{exchange: e, result: e.Run(ctx)}
	})
	if !m.spinning {
		m.spinning = true
		m.queued = append(m.queued, m.spinner.Tick)
	}
}

func (m *Model) drain() []tea.Cmd {
	cmds := m.queued
	m.queued = nil
	return cmds
}

func (m *Model) handlePageKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextLink):
		m.selectLink(m.navIndex + 1)
		return nil
	case key.Matches(msg, m.keys.PrevLink):
		m.selectLink(m.navIndex - 1)
		return nil
	case key.Matches(msg, m.keys.Follow):
		return m.follow(m.navIndex)
	case key.Matches(msg, m.keys.Direct):
		i := int(msg.String()[0] - '1')
		if i >= len(m.doc.Nav) {
			return nil
		}
		m.navIndex = i
		return m.follow(i)
	}

	var cmd tea.Cmd
	m.pageView, cmd = m.pageView.Update(msg)
	m.scroller.Jump(m.pageView.YOffset)
	return cmd
}

func (m *Model) selectLink(i int) {
	n := len(m.doc.Nav)
	if n == 0 {
		return
	}
	m.navIndex = (i%n + n) % n
}

// follow scrolls smoothly to the section a nav link points at. A link whose
// target does not exist does nothing visible.
func (m *Model) follow(i int) tea.Cmd {
	if i < 0 || i >= len(m.doc.Nav) || m.layout == nil {
		return nil
	}
	link := m.doc.Nav[i]
	line, err := m.layout.Resolve(link.Href)
	if err != nil {
		m.logger.Debug("nav link has no target",
			zap.String("label", link.Label),
			zap.String("href", link.Href),
			zap.Error(err))
		return nil
	}
	m.scroller.ScrollTo(min(line, m.maxOffset()))
	return m.animate()
}

func (m *Model) animate() tea.Cmd {
	if m.animating || !m.scroller.Active() {
		return nil
	}
	m.animating = true
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(page.FrameInterval, func(time.Time) tea.Msg {
		return scrollFrameMsg{}
	})
}

func (m *Model) maxOffset() int {
	return max(0, m.pageView.TotalLineCount()-m.pageView.Height)
}

func (m *Model) renderPage() {
	r, err := page.NewRenderer(m.width-2, m.style)
	if err != nil {
		m.logger.Error("create markdown renderer", zap.Error(err))
		m.pageView.SetContent(fmt.Sprintf("Unable to render page: %v", err))
		return
	}
	layout, err := page.Render(m.doc, r)
	if err != nil {
		m.logger.Error("render page", zap.Error(err))
		m.pageView.SetContent(fmt.Sprintf("Unable to render page: %v", err))
		return
	}
	m.layout = layout
	m.pageView.SetContent(layout.Content())
	m.scroller.Jump(m.pageView.YOffset)
}

func (m *Model) reloadPage() {
	doc, err := page.Load(m.pagePath)
	if err != nil {
		m.logger.Warn("reload page", zap.String("path", m.pagePath), zap.Error(err))
		return
	}
	m.logger.Debug("page reloaded", zap.String("path", m.pagePath))
	m.doc = doc
	if m.navIndex >= len(doc.Nav) {
		m.navIndex = 0
	}
	if m.ready {
		m.renderPage()
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return pageChangedMsg{}
	}
}

// resize splits the height between the page and the open widget.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	pageHeight := m.height - chromeHeight
	if m.widget.open {
		rows := max(3, m.height/3)
		m.widget.setSize(m.width-4, rows)
		pageHeight -= rows + widgetChrome
	}
	m.pageView.Width = m.width
	m.pageView.Height = max(1, pageHeight)
	m.pageView.SetYOffset(m.pageView.YOffset)
	m.scroller.Jump(m.pageView.YOffset)
}

// overWidget reports whether screen row y falls inside the open chat panel,
// which sits right below the nav bar and the page.
func (m *Model) overWidget(y int) bool {
	return m.widget.open && y >= 1+m.pageView.Height
}

func (m *Model) navView() string {
	title := m.doc.Title
	if title == "" {
		title = "Portfolio"
	}

	current := ""
	if m.layout != nil {
		current = m.layout.SectionAt(m.pageView.YOffset)
	}

	tabs := []string{titleStyle.Render(title)}
	for i, link := range m.doc.Nav {
		style := tabStyle
		if id, ok := page.Fragment(link.Href); ok && id == current {
			style = activeTabStyle
		}
		if i == m.navIndex && !m.widget.open {
			style = style.Inherit(selectedTabStyle)
		}
		tabs = append(tabs, style.Render(link.Label))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Model) widgetView() string {
	title := widgetTitleStyle.Render("Chat")
	if m.pending > 0 {
		title += "  " + m.spinner.View() + statusStyle.Render(" waiting for reply")
	}
	body := strings.Join([]string{
		title,
		m.widget.messages.View(),
		m.widget.input.View(),
	}, "\n")
	return widgetStyle.Width(m.width - 2).Render(body)
}

func (m *Model) helpView() string {
	if m.widget.open {
		return m.help.View(m.keys.chatHelp())
	}
	return m.help.View(m.keys.pageHelp())
}
