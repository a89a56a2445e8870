// Package ui is folio's page shell: a Bubble Tea model that renders the
// content as one long scrolling page under a sticky navigation bar, keeps the
// active section in sync through pkg/view and shows detail records in an
// overlay.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/internal/datasource"
	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/view"
	"github.com/vanderheijden86/folio/pkg/watcher"
)

// Default dimensions used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	footerHeight  = 1
)

// ContentChangedMsg is sent when the watched content file changed on disk.
type ContentChangedMsg struct{}

// frameMsg fires once per scheduled frame; the spy recomputes on it.
type frameMsg struct{}

// settleMsg fires once a navigation's settle window has passed.
type settleMsg struct{}

// WatchFileCmd returns a command that waits for file changes and sends ContentChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ContentChangedMsg{}
	}
}

// chromeState is shared by every copy of the Model and fed by the store
// subscription, so state changes made inside the controller (a navigation
// collapsing the menu) still trigger a relayout.
type chromeState struct {
	menuOpen bool
	resize   bool
	active   content.SectionID
}

// Model is the page shell.
type Model struct {
	site   *content.Site
	source datasource.DataSource
	cfg    config.Config
	theme  Theme
	md     *MarkdownRenderer
	keys   keyMap
	help   help.Model

	store    *view.Store
	spy      *view.ScrollSpy
	overlay  *view.Overlay
	gate     *view.Gate
	frames   *view.FrameBatcher
	scroller *pageScroller
	layout   *pageLayout
	modal    *DetailModal
	chrome   *chromeState
	unsub    func()

	watcher *watcher.Watcher

	width        int
	height       int
	ready        bool
	focus        int // index into layout.triggers, -1 for none
	showHelp     bool
	startSection content.SectionID

	statusMsg     string
	statusIsError bool
}

// Option configures a Model.
type Option func(*Model)

// WithWatcher reloads content whenever w reports a change.
func WithWatcher(w *watcher.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// WithStartSection navigates to id once the terminal size is known.
func WithStartSection(id content.SectionID) Option {
	return func(m *Model) {
		m.startSection = id
	}
}

// NewModel builds the page shell for site. The model is laid out at default
// dimensions right away so it is usable before the first resize.
func NewModel(site *content.Site, source datasource.DataSource, cfg config.Config, opts ...Option) Model {
	r := lipgloss.NewRenderer(os.Stdout)
	switch cfg.UI.Theme {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	theme := DefaultTheme(r)

	var first content.SectionID
	if len(site.Sections) > 0 {
		first = site.Sections[0].ID
	}

	store := view.NewStore(first)
	gate := &view.Gate{}
	scroller := newPageScroller(defaultWidth, defaultHeight, cfg.UI.SmoothScrollEnabled())

	m := Model{
		site:     site,
		source:   source,
		cfg:      cfg,
		theme:    theme,
		md:       NewMarkdownRenderer(cfg.UI.Theme),
		keys:     defaultKeyMap(),
		help:     help.New(),
		store:    store,
		gate:     gate,
		frames:   &view.FrameBatcher{},
		scroller: scroller,
		modal:    NewDetailModal(theme),
		chrome:   &chromeState{active: first},
		width:    defaultWidth,
		height:   defaultHeight,
		focus:    -1,
	}
	m.spy = view.NewScrollSpy(store, site.SectionIDs(), nil, scroller,
		view.WithHeaderOffset(cfg.UI.HeaderOffset),
		view.WithSettleWindow(cfg.UI.SettleWindow()),
	)
	m.overlay = view.NewOverlay(store, gate)

	chrome := m.chrome
	m.unsub = store.Subscribe(func(s view.State) {
		if s.MenuExpanded != chrome.menuOpen {
			chrome.menuOpen = s.MenuExpanded
			chrome.resize = true
		}
		if s.ActiveSection != chrome.active {
			debug.Log("ui: active section %s -> %s", chrome.active, s.ActiveSection)
			chrome.active = s.ActiveSection
		}
	})

	for _, opt := range opts {
		opt(&m)
	}
	m.relayout()
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.relayout()
		cmds = append(cmds, m.requestFrame())
		if m.startSection != "" {
			id := m.startSection
			m.startSection = ""
			cmds = append(cmds, m.navigate(id))
		}

	case frameMsg:
		if m.frames.Flush() {
			m.spy.Recompute()
		}

	case settleMsg:
		m.spy.Recompute()

	case scrollAnimMsg:
		if m.gate.Locked() {
			m.scroller.stop()
			break
		}
		if msg.gen == m.scroller.gen {
			if m.scroller.step() {
				cmds = append(cmds, m.scroller.animCmd(m.cfg.UI.FrameInterval()))
			}
			cmds = append(cmds, m.requestFrame())
		}

	case ContentChangedMsg:
		m.reloadContent()
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		cmds = append(cmds, m.requestFrame())

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	}

	if m.chrome.resize {
		m.chrome.resize = false
		m.relayout()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.statusMsg = ""
	m.statusIsError = false

	// The overlay owns input while open; background scrolling is locked.
	if m.overlay.IsOpen() {
		if m.modal.Update(msg) {
			m.overlay.Close()
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Escape):
		m.store.CollapseMenu()
		if m.focus >= 0 {
			m.focus = -1
			m.refreshContent()
		}
	case key.Matches(msg, m.keys.Down):
		return m, m.scroll(1)
	case key.Matches(msg, m.keys.Up):
		return m, m.scroll(-1)
	case key.Matches(msg, m.keys.HalfDown):
		return m, m.scroll(m.scroller.vp.Height / 2)
	case key.Matches(msg, m.keys.HalfUp):
		return m, m.scroll(-m.scroller.vp.Height / 2)
	case key.Matches(msg, m.keys.PageDown):
		return m, m.scroll(m.scroller.vp.Height)
	case key.Matches(msg, m.keys.PageUp):
		return m, m.scroll(-m.scroller.vp.Height)
	case key.Matches(msg, m.keys.Top):
		return m, m.jump(0)
	case key.Matches(msg, m.keys.Bottom):
		return m, m.jump(m.scroller.maxOffset())
	case key.Matches(msg, m.keys.Section):
		idx := int(msg.String()[0] - '1')
		if idx < len(m.site.Sections) {
			return m, m.navigate(m.site.Sections[idx].ID)
		}
	case key.Matches(msg, m.keys.PrevSection):
		return m, m.navigateRelative(-1)
	case key.Matches(msg, m.keys.NextSection):
		return m, m.navigateRelative(1)
	case key.Matches(msg, m.keys.Home):
		return m, m.navigate(content.SectionHome)
	case key.Matches(msg, m.keys.NextTrigger):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevTrigger):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.Activate):
		return m, m.activate()
	case key.Matches(msg, m.keys.Copy):
		m.copyFocusedLink()
	case key.Matches(msg, m.keys.Menu):
		if m.width < WideNavWidth {
			m.store.ToggleMenu()
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.overlay.IsOpen() {
		m.modal.Update(msg)
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m.scroll(m.cfg.UI.ScrollStep)
	case tea.MouseButtonWheelUp:
		return m.scroll(-m.cfg.UI.ScrollStep)
	}
	return nil
}

// requestFrame coalesces recompute requests into one frame tick.
func (m *Model) requestFrame() tea.Cmd {
	if !m.frames.Request() {
		return nil
	}
	return tea.Tick(m.cfg.UI.FrameInterval(), func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) scroll(n int) tea.Cmd {
	if m.gate.Locked() || n == 0 {
		return nil
	}
	if !m.scroller.scrollBy(n) {
		return nil
	}
	return m.requestFrame()
}

func (m *Model) jump(y int) tea.Cmd {
	if m.gate.Locked() {
		return nil
	}
	if !m.scroller.jump(y) {
		return nil
	}
	return m.requestFrame()
}

// navigate hands directed navigation to the spy and schedules the
// animation and the follow-up recompute after the settle window.
func (m *Model) navigate(id content.SectionID) tea.Cmd {
	if m.gate.Locked() {
		return nil
	}
	m.spy.Navigate(id)
	if !m.spy.Settling() {
		return nil
	}
	if m.focus >= 0 {
		m.focus = -1
		m.refreshContent()
	}

	wait := m.spy.SettleWindow() + m.cfg.UI.FrameInterval()
	cmds := []tea.Cmd{
		tea.Tick(wait, func(time.Time) tea.Msg { return settleMsg{} }),
	}
	if m.scroller.Animating() {
		cmds = append(cmds, m.scroller.animCmd(m.cfg.UI.FrameInterval()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) navigateRelative(delta int) tea.Cmd {
	ids := m.site.SectionIDs()
	if len(ids) == 0 {
		return nil
	}
	active := m.store.State().ActiveSection
	idx := 0
	for i, id := range ids {
		if id == active {
			idx = i
			break
		}
	}
	next := clamp(idx+delta, 0, len(ids)-1)
	if next == idx {
		return nil
	}
	return m.navigate(ids[next])
}

// moveFocus cycles trigger focus. Focus starts from the first trigger on
// screen and the page follows a focused trigger that is off screen.
func (m *Model) moveFocus(dir int) tea.Cmd {
	ts := m.layout.triggers
	if len(ts) == 0 {
		return nil
	}
	top := m.scroller.Offset()
	bottom := top + m.scroller.vp.Height
	visible := func(i int) bool {
		return ts[i].Row >= top && ts[i].Row < bottom
	}

	next := -1
	switch {
	case m.focus >= 0 && m.focus < len(ts) && visible(m.focus):
		next = (m.focus + dir + len(ts)) % len(ts)
	case dir > 0:
		next = 0
		for i := range ts {
			if ts[i].Row >= top {
				next = i
				break
			}
		}
	default:
		next = len(ts) - 1
		for i := len(ts) - 1; i >= 0; i-- {
			if ts[i].Row < bottom {
				next = i
				break
			}
		}
	}

	m.focus = next
	m.refreshContent()
	if !visible(next) {
		return m.jump(ts[next].Row - m.scroller.vp.Height/3)
	}
	return nil
}

// FocusedTrigger returns the focused trigger, if any.
func (m Model) FocusedTrigger() (Trigger, bool) {
	if m.layout == nil || m.focus < 0 || m.focus >= len(m.layout.triggers) {
		return Trigger{}, false
	}
	return m.layout.triggers[m.focus], true
}

func (m *Model) activate() tea.Cmd {
	t, ok := m.FocusedTrigger()
	if !ok {
		return nil
	}
	switch t.Kind {
	case TriggerDetail:
		m.overlay.Open(t.Detail)
		m.scroller.stop()
		if rec, ok := m.overlay.Current(); ok {
			m.modal.SetRecord(rec)
		}
	case TriggerLink:
		if err := openURL(t.URL); err != nil {
			m.statusMsg = fmt.Sprintf("❌ Could not open %s: %v", t.URL, err)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("↗ Opened %s", t.URL)
			m.statusIsError = false
		}
	case TriggerNavigate:
		return m.navigate(t.Target)
	}
	return nil
}

func (m *Model) copyFocusedLink() {
	t, ok := m.FocusedTrigger()
	if !ok || t.URL == "" {
		m.statusMsg = "No link focused (tab to select one)"
		m.statusIsError = true
		return
	}
	if err := clipboard.WriteAll(t.URL); err != nil {
		m.statusMsg = fmt.Sprintf("❌ Clipboard error: %v", err)
		m.statusIsError = true
		return
	}
	m.statusMsg = fmt.Sprintf("📋 Copied %s to clipboard", t.URL)
	m.statusIsError = false
}

// reloadContent swaps in the re-read content. A failed reload keeps the
// current content.
func (m *Model) reloadContent() {
	site, err := datasource.Reload(m.source)
	if err != nil {
		debug.Log("ui: reload failed: %v", err)
		m.statusMsg = fmt.Sprintf("❌ Reload failed: %v", err)
		m.statusIsError = true
		return
	}
	diff := datasource.DiffSites(m.site, site)
	m.site = site
	m.layout = nil
	m.focus = -1
	m.spy.SetSections(site.SectionIDs())
	m.relayout()
	m.statusMsg = diff.Summary()
	m.statusIsError = false
}

func (m *Model) navHeight() int {
	st := m.store.State()
	return lipgloss.Height(renderNavBar(m.site, st.ActiveSection, st.MenuExpanded, m.width, m.theme))
}

// relayout sizes the viewport to the space left by the nav bar and footer
// and rebuilds the page when the reading width changed.
func (m *Model) relayout() {
	bodyHeight := m.height - m.navHeight() - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	pw := pageWidth(m.width)
	if m.layout == nil || m.layout.width != pw {
		m.layout = buildLayout(m.site, m.theme, m.md, pw)
		m.spy.SetLayout(m.layout)
		if m.focus >= len(m.layout.triggers) {
			m.focus = -1
		}
	}
	m.scroller.vp.Width = m.width
	m.scroller.vp.Height = bodyHeight
	m.refreshContent()
	m.modal.SetSize(m.width, bodyHeight)
}

func (m *Model) refreshContent() {
	row := -1
	if t, ok := m.FocusedTrigger(); ok {
		row = t.Row
	}
	offset := m.scroller.vp.YOffset
	m.scroller.vp.SetContent(m.layout.Content(m.theme, row))
	m.scroller.vp.SetYOffset(clamp(offset, 0, m.scroller.maxOffset()))
}

func (m Model) View() string {
	defer metrics.Timer(metrics.Render)()

	st := m.store.State()
	nav := renderNavBar(m.site, st.ActiveSection, st.MenuExpanded, m.width, m.theme)
	bodyHeight := m.scroller.vp.Height

	var body string
	switch {
	case st.HasDetail():
		body = m.modal.Place(m.width, bodyHeight)
	case m.showHelp:
		body = m.renderHelp(bodyHeight)
	default:
		body = m.scroller.vp.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, nav, body, m.renderFooter(st))
}

func (m Model) renderHelp(height int) string {
	h := m.help
	h.ShowAll = true
	h.Width = m.width - 2*SpaceLG
	box := m.theme.Card.Render(
		m.theme.CardTitle.Render("Keyboard shortcuts") + "\n\n" + h.FullHelpView(m.keys.FullHelp()),
	)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderFooter(st view.State) string {
	var left string
	if m.statusMsg != "" {
		style := m.theme.StatusText
		if m.statusIsError {
			style = m.theme.StatusError
		}
		left = style.Render(m.statusMsg)
	} else {
		label := string(st.ActiveSection)
		if sec, ok := m.site.FindSection(st.ActiveSection); ok {
			label = sec.Label
		}
		left = m.theme.Tag.Render("§ "+label) +
			m.theme.MutedText.Render(fmt.Sprintf("  %3.0f%%", m.scroller.vp.ScrollPercent()*100))
	}

	h := m.help
	h.Width = m.width - lipgloss.Width(left) - SpaceSM
	right := h.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return truncateBar(left+strings.Repeat(" ", gap)+right, m.width)
}

// Close releases the store subscription. Call after the program exits.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

// ActiveSection returns the section the reader is in.
func (m Model) ActiveSection() content.SectionID {
	return m.store.State().ActiveSection
}

// DetailOpen reports whether the overlay shows a record.
func (m Model) DetailOpen() bool {
	return m.overlay.IsOpen()
}

// OpenDetail returns the record in the overlay.
func (m Model) OpenDetail() (content.DetailRecord, bool) {
	return m.overlay.Current()
}

// ScrollLocked reports whether background scrolling is suspended.
func (m Model) ScrollLocked() bool {
	return m.gate.Locked()
}

// MenuExpanded reports whether the narrow-terminal menu is open.
func (m Model) MenuExpanded() bool {
	return m.store.State().MenuExpanded
}

// Offset returns the page scroll offset.
func (m Model) Offset() int {
	return m.scroller.Offset()
}

// Status returns the status line message and whether it is an error.
func (m Model) Status() (string, bool) {
	return m.statusMsg, m.statusIsError
}

// Site returns the content being shown.
func (m Model) Site() *content.Site {
	return m.site
}
