package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/folio/internal/datasource"
	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/view"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testConfig(smooth bool) config.Config {
	cfg := config.DefaultConfig()
	cfg.UI.SmoothScroll = &smooth
	return cfg
}

func newTestModel(t *testing.T, cfg config.Config, width, height int, opts ...Option) Model {
	t.Helper()
	src := datasource.DataSource{Type: datasource.SourceTypeEmbedded, Path: datasource.EmbeddedPath, Valid: true}
	m := NewModel(content.Default(), src, cfg, opts...)
	t.Cleanup(m.Close)
	return update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func expectedActive(m Model) content.SectionID {
	var bounds []view.SectionBounds
	for _, id := range m.site.SectionIDs() {
		if b, ok := m.layout.Bounds(id); ok {
			bounds = append(bounds, b)
		}
	}
	return view.Recompute(bounds, m.Offset(), m.cfg.UI.HeaderOffset, m.ActiveSection())
}

func TestModel_StartsAtFirstSection(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	if m.ActiveSection() != content.SectionHome {
		t.Errorf("active = %s, want home", m.ActiveSection())
	}
	if m.DetailOpen() || m.ScrollLocked() {
		t.Error("overlay should start closed and unlocked")
	}
	if !strings.Contains(m.View(), "KARL MARX") {
		t.Error("view should show the site title in the nav bar")
	}
}

func TestModel_NumberKeysNavigate(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)

	for i, sec := range m.site.Sections {
		m = update(t, m, keyRune(rune('1'+i)))
		if m.ActiveSection() != sec.ID {
			t.Errorf("key %d: active = %s, want %s", i+1, m.ActiveSection(), sec.ID)
		}
		b, _ := m.layout.Bounds(sec.ID)
		want := clamp(b.Top, 0, m.scroller.maxOffset())
		if m.Offset() != want {
			t.Errorf("key %d: offset = %d, want %d", i+1, m.Offset(), want)
		}
	}

	// Out of range keys do nothing.
	before := m.ActiveSection()
	m = update(t, m, keyRune('9'))
	if m.ActiveSection() != before {
		t.Errorf("key 9 changed active section to %s", m.ActiveSection())
	}
}

func TestModel_BracketsAndHome(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)

	m = update(t, m, keyRune(']'))
	if m.ActiveSection() != content.SectionBiography {
		t.Errorf("after ]: %s", m.ActiveSection())
	}
	m = update(t, m, keyRune(']'))
	m = update(t, m, keyRune('['))
	if m.ActiveSection() != content.SectionBiography {
		t.Errorf("after ] [: %s", m.ActiveSection())
	}
	m = update(t, m, keyRune('h'))
	if m.ActiveSection() != content.SectionHome || m.Offset() != 0 {
		t.Errorf("home: active %s offset %d", m.ActiveSection(), m.Offset())
	}
	// [ at the first section stays put.
	m = update(t, m, keyRune('['))
	if m.ActiveSection() != content.SectionHome {
		t.Errorf("[ at first section moved to %s", m.ActiveSection())
	}
}

func TestModel_ScrollRecomputesOncePerFrame(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	// Drain the frame requested by the resize.
	m = update(t, m, frameMsg{})

	m, cmd := updateCmd(t, m, keyRune('j'))
	if cmd == nil {
		t.Fatal("first scroll should schedule a frame")
	}
	m, cmd = updateCmd(t, m, keyRune('j'))
	if cmd != nil {
		t.Error("second scroll in the same frame should not schedule another")
	}

	// Scroll well into the page, then let the frame fire.
	for i := 0; i < 60; i++ {
		m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	want := expectedActive(m)
	m = update(t, m, frameMsg{})
	if m.ActiveSection() != want {
		t.Errorf("active after frame = %s, want %s", m.ActiveSection(), want)
	}
	if m.ActiveSection() == content.SectionHome {
		t.Error("expected to have scrolled past the hero")
	}
}

func TestModel_SmoothNavigationHoldsSection(t *testing.T) {
	m := newTestModel(t, testConfig(true), 100, 30)
	m = update(t, m, frameMsg{})

	m = update(t, m, keyRune('5'))
	if m.ActiveSection() != content.SectionWorks {
		t.Fatalf("active = %s, want works", m.ActiveSection())
	}
	if !m.scroller.Animating() {
		t.Fatal("expected a smooth scroll in flight")
	}

	// Every animation frame and spy frame inside the settle window keeps
	// the navigated section.
	for i := 0; i < 100 && m.scroller.Animating(); i++ {
		m = update(t, m, scrollAnimMsg{gen: m.scroller.gen})
		m = update(t, m, frameMsg{})
		if m.ActiveSection() != content.SectionWorks {
			t.Fatalf("frame %d: active flipped to %s", i, m.ActiveSection())
		}
	}
	b, _ := m.layout.Bounds(content.SectionWorks)
	if m.Offset() != clamp(b.Top, 0, m.scroller.maxOffset()) {
		t.Errorf("animation ended at %d, want %d", m.Offset(), b.Top)
	}
}

func TestModel_StaleAnimationTickIgnored(t *testing.T) {
	m := newTestModel(t, testConfig(true), 100, 30)
	m = update(t, m, keyRune('4'))
	stale := m.scroller.gen
	// Reader input cancels the animation.
	m = update(t, m, keyRune('j'))
	offset := m.Offset()
	m = update(t, m, scrollAnimMsg{gen: stale})
	if m.Offset() != offset {
		t.Errorf("stale animation tick moved the page from %d to %d", offset, m.Offset())
	}
}

func TestModel_SettleFollowUpHandsBackControl(t *testing.T) {
	cfg := testConfig(false)
	cfg.UI.SettleWindowMs = 1
	m := newTestModel(t, cfg, 100, 30)

	m = update(t, m, keyRune('3'))
	if m.ActiveSection() != content.SectionThought {
		t.Fatalf("active = %s, want thought", m.ActiveSection())
	}
	time.Sleep(5 * time.Millisecond)

	// Resting on the target after the window keeps the navigated section.
	m = update(t, m, settleMsg{})
	if m.ActiveSection() != content.SectionThought {
		t.Errorf("after settle: %s", m.ActiveSection())
	}

	// Scrolling back to the top hands control back to the spy.
	m = update(t, m, keyRune('g'))
	m = update(t, m, frameMsg{})
	if m.ActiveSection() != content.SectionHome {
		t.Errorf("after scrolling to top: %s", m.ActiveSection())
	}
}

// focusFirst tabs until a trigger of kind is focused.
func focusFirst(t *testing.T, m Model, kind TriggerKind) Model {
	t.Helper()
	for i := 0; i < len(m.layout.triggers)+1; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if tr, ok := m.FocusedTrigger(); ok && tr.Kind == kind {
			return m
		}
	}
	t.Fatalf("no %s trigger reachable with tab", kind)
	return m
}

func TestModel_DetailOverlayLocksScroll(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	m = update(t, m, keyRune('3'))
	m = focusFirst(t, m, TriggerDetail)
	tr, _ := m.FocusedTrigger()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.DetailOpen() || !m.ScrollLocked() {
		t.Fatal("enter on a detail trigger should open the overlay and lock scrolling")
	}
	rec, _ := m.OpenDetail()
	if rec.Title != tr.Detail.Title {
		t.Errorf("open record %q, want %q", rec.Title, tr.Detail.Title)
	}
	if !strings.Contains(m.View(), modalTagLabel) {
		t.Error("view should render the overlay")
	}

	offset := m.Offset()
	m = update(t, m, keyRune('j'))
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = update(t, m, keyRune('5'))
	if m.Offset() != offset {
		t.Errorf("background scrolled while locked: %d -> %d", offset, m.Offset())
	}
	if m.ActiveSection() != content.SectionThought {
		t.Errorf("navigation happened while locked: %s", m.ActiveSection())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.DetailOpen() || m.ScrollLocked() {
		t.Error("esc should close the overlay and release the lock")
	}

	// Scrolling works again.
	m = update(t, m, keyRune('j'))
	if m.Offset() == offset {
		t.Error("expected background scroll after closing")
	}
}

func TestModel_OverlayCloseKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		keyRune('q'),
	} {
		m := newTestModel(t, testConfig(false), 100, 30)
		m = update(t, m, keyRune('3'))
		m = focusFirst(t, m, TriggerDetail)
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		next, cmd := m.Update(k)
		m = next.(Model)
		if m.DetailOpen() {
			t.Errorf("%s did not close the overlay", k)
		}
		if cmd != nil {
			t.Errorf("%s inside the overlay should not quit", k)
		}
	}
}

func TestModel_HeroCallToActionNavigates(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	m = focusFirst(t, m, TriggerNavigate)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.ActiveSection() != content.SectionBiography {
		t.Errorf("call to action led to %s", m.ActiveSection())
	}
	if _, ok := m.FocusedTrigger(); ok {
		t.Error("navigation should clear trigger focus")
	}
}

func TestModel_LinkActivationReportsStatus(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	m = update(t, m, keyRune('6'))
	m = focusFirst(t, m, TriggerLink)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	msg, isErr := m.Status()
	// Browsers are disabled under test.
	if !isErr || !strings.Contains(msg, "Could not open") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
}

func TestModel_CopyWithoutFocus(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	m = update(t, m, keyRune('y'))
	msg, isErr := m.Status()
	if !isErr || !strings.Contains(msg, "No link focused") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
	// Any key clears the status.
	m = update(t, m, keyRune('j'))
	if msg, _ := m.Status(); msg != "" {
		t.Errorf("status not cleared: %q", msg)
	}
}

func TestModel_NarrowMenu(t *testing.T) {
	m := newTestModel(t, testConfig(false), 60, 30)
	height := m.scroller.vp.Height

	m = update(t, m, keyRune('m'))
	if !m.MenuExpanded() {
		t.Fatal("m should expand the menu on narrow terminals")
	}
	if m.scroller.vp.Height >= height {
		t.Error("expanded menu should take rows from the page")
	}
	if !strings.Contains(m.View(), "Obras Principales") {
		t.Error("menu should list long labels")
	}

	m = update(t, m, keyRune('2'))
	if m.MenuExpanded() {
		t.Error("navigating should collapse the menu")
	}
	if m.ActiveSection() != content.SectionBiography {
		t.Errorf("active = %s", m.ActiveSection())
	}
	if m.scroller.vp.Height != height {
		t.Errorf("page height %d not restored to %d", m.scroller.vp.Height, height)
	}
}

func TestModel_MenuToggleIgnoredWhenWide(t *testing.T) {
	m := newTestModel(t, testConfig(false), 120, 30)
	m = update(t, m, keyRune('m'))
	if m.MenuExpanded() {
		t.Error("menu toggle should be inert on wide terminals")
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	m = update(t, m, keyRune('?'))
	if !strings.Contains(m.View(), "Keyboard shortcuts") {
		t.Error("? should show help")
	}
	offset := m.Offset()
	m = update(t, m, keyRune('j'))
	if strings.Contains(m.View(), "Keyboard shortcuts") {
		t.Error("any key should dismiss help")
	}
	if m.Offset() != offset {
		t.Error("the dismissing key should not scroll")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	for _, k := range []tea.KeyMsg{keyRune('q'), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not return tea.Quit", k)
		}
	}
}

func TestModel_StartSection(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30, WithStartSection(content.SectionInfluences))
	if m.ActiveSection() != content.SectionInfluences {
		t.Errorf("active = %s, want influences", m.ActiveSection())
	}
}

func TestModel_ResizeKeepsSpyConsistent(t *testing.T) {
	m := newTestModel(t, testConfig(false), 100, 30)
	for i := 0; i < 40; i++ {
		m = update(t, m, keyRune('j'))
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})
	m = update(t, m, frameMsg{})
	if m.ActiveSection() != expectedActive(m) {
		t.Errorf("after resize active = %s, want %s", m.ActiveSection(), expectedActive(m))
	}
}

func TestModel_ReloadContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	data := bytes.Replace(content.DefaultYAML(), []byte(`title: "KARL MARX"`), []byte(`title: "MARX"`), 1)
	if err := os.WriteFile(path, content.DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}
	site, err := content.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	src := datasource.DataSource{Type: datasource.SourceTypeFlag, Path: path, Valid: true}
	m := NewModel(site, src, testConfig(false))
	t.Cleanup(m.Close)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, ContentChangedMsg{})
	if m.Site().Title != "MARX" {
		t.Errorf("title = %q after reload", m.Site().Title)
	}
	msg, isErr := m.Status()
	if isErr || !strings.Contains(msg, "title changed") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}

	// A broken file keeps the current content.
	if err := os.WriteFile(path, []byte("sections: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, ContentChangedMsg{})
	if m.Site().Title != "MARX" {
		t.Error("failed reload replaced the content")
	}
	if _, isErr := m.Status(); !isErr {
		t.Error("failed reload should report an error")
	}
}

func TestModel_OverlayStopsSmoothScroll(t *testing.T) {
	m := newTestModel(t, testConfig(true), 100, 30)
	m = update(t, m, keyRune('6'))
	if !m.scroller.Animating() {
		t.Fatal("expected a smooth scroll in flight")
	}

	var rec content.DetailRecord
	for _, tr := range m.layout.triggers {
		if tr.Kind == TriggerDetail {
			rec = tr.Detail
			break
		}
	}
	m.overlay.Open(rec)
	gen := m.scroller.gen
	offset := m.Offset()

	for i := 0; i < 30; i++ {
		var cmd tea.Cmd
		m, cmd = updateCmd(t, m, scrollAnimMsg{gen: gen})
		if cmd != nil {
			t.Fatalf("tick %d scheduled more work while locked", i)
		}
	}
	if m.Offset() != offset {
		t.Errorf("background scrolled under the overlay: %d -> %d", offset, m.Offset())
	}
	if m.scroller.Animating() {
		t.Error("animation should be cancelled while locked")
	}
}

func TestModel_OpeningDetailCancelsAnimation(t *testing.T) {
	m := newTestModel(t, testConfig(true), 100, 30)
	m = update(t, m, keyRune('3'))
	m = focusFirst(t, m, TriggerDetail)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.DetailOpen() {
		t.Fatal("expected the overlay to open")
	}
	if m.scroller.Animating() {
		t.Error("opening a record should cancel the smooth scroll")
	}
}
