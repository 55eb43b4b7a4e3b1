// ABOUTME: Tests for the playground model driven by synthetic tea messages
// ABOUTME: Covers popup lifecycle, live option toggles, scrolling, mouse, search and reload

package playground

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/affix-go/internal/config"
	"github.com/mauromedda/affix-go/pkg/affix"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, deps Deps) *Model {
	t.Helper()
	m := NewModel(deps)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func send(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func TestNewModel_OpensFirstPopup(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	c := m.Controller()
	if !c.Mounted() {
		t.Fatal("first popup not mounted")
	}
	if !c.Positioning().Measured {
		t.Error("first popup not measured")
	}
	if got := len(m.TUI().Layers()); got != 1 {
		t.Errorf("layers = %d, want 1", got)
	}
	if got := len(m.targets); got != len(SampleDocs())+1 {
		t.Errorf("targets = %d, want %d", got, len(SampleDocs())+1)
	}

	view := m.View()
	if got := strings.Count(view, "\n") + 1; got != 24 {
		t.Errorf("view lines = %d, want 24", got)
	}
	if !strings.Contains(view, "Welcome") {
		t.Error("view does not show the first anchor")
	}
}

func TestModel_TabAndEscape(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	send(m, "tab")
	if m.selected != 1 || !m.Controller().Mounted() {
		t.Fatalf("selected = %d mounted = %v, want 1 true", m.selected, m.Controller().Mounted())
	}
	if got := m.targets[m.selected].label; got != "● Edge fallback" {
		t.Errorf("label = %q", got)
	}
	if got := m.Controller().Options().Edges; len(got) != 2 {
		t.Errorf("edges = %v, want the document's over,under", got)
	}

	send(m, "esc")
	if m.Controller().Mounted() {
		t.Error("esc did not close the popup")
	}
	if got := len(m.TUI().Layers()); got != 0 {
		t.Errorf("layers = %d, want 0", got)
	}
	scroll, resize := m.TUI().Subscribers()
	if scroll != 0 || resize != 0 {
		t.Errorf("subscribers = %d,%d, want 0,0", scroll, resize)
	}

	send(m, "enter")
	if !m.Controller().Mounted() || m.selected != 1 {
		t.Error("enter did not reopen the selected popup")
	}
}

func TestModel_Toggles(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	before := m.Controller().Options()
	if before.Align != affix.AlignEdge || before.Bridge != affix.BridgeNone || before.Prefab != affix.PrefabCallout {
		t.Fatalf("initial options = %+v", before)
	}

	send(m, "a", "b", "e", "p")
	o := m.Controller().Options()
	if o.Align != affix.AlignCenter {
		t.Errorf("align = %v, want center", o.Align)
	}
	if o.Bridge != affix.BridgeArrow {
		t.Errorf("bridge = %v, want arrow", o.Bridge)
	}
	if len(o.Edges) != 1 || o.Edges[0] != affix.EdgeOver {
		t.Errorf("edges = %v, want [over]", o.Edges)
	}
	if o.Prefab != affix.PrefabNone {
		t.Errorf("prefab = %q, want none", o.Prefab)
	}
	if !m.Controller().Mounted() {
		t.Error("toggles unmounted the popup")
	}
	if got := m.Controller().Positioning().Scheme; got != affix.EdgeOver {
		t.Errorf("scheme = %v, want over", got)
	}
	if !strings.Contains(m.statusLine(), "edges over") {
		t.Errorf("status = %q", m.statusLine())
	}
}

func TestModel_ScrollFollows(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	before := m.Controller().Positioning()
	send(m, "down")
	after := m.Controller().Positioning()

	if after.Scheme != before.Scheme {
		t.Fatalf("scheme changed from %v to %v", before.Scheme, after.Scheme)
	}
	if got, want := after.Translation.Y, before.Translation.Y-1; got != want {
		t.Errorf("translation y = %g, want %g", got, want)
	}
	if got, want := after.AnchorRect.Top, before.AnchorRect.Top-1; got != want {
		t.Errorf("anchor top = %g, want %g", got, want)
	}
}

func TestModel_MouseBackdropAndAnchor(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	m.Update(tea.MouseMsg{X: 79, Y: 22, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Controller().Mounted() {
		t.Fatal("click outside did not close the popup")
	}

	a := m.targets[0].region.Absolute()
	m.Update(tea.MouseMsg{X: int(a.Left) + 1, Y: int(a.Top), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Controller().Mounted() || m.selected != 0 {
		t.Error("click on an anchor did not open its popup")
	}

	m.Update(tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if got := m.docPane.Region().Scroll().Y; got != scrollStep {
		t.Errorf("scroll = %g, want %d", got, scrollStep)
	}
}

func TestModel_BackdropDisabled(t *testing.T) {
	t.Parallel()

	off := false
	m := newTestModel(t, Deps{Settings: &config.Settings{Backdrop: &off}})
	m.Update(tea.MouseMsg{X: 79, Y: 22, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Controller().Mounted() {
		t.Error("popup closed without a backdrop")
	}
}

func TestModel_Search(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	send(m, "/", "n", "a", "r", "r")
	if !m.searching || m.helpLine() != "/narr" {
		t.Fatalf("search state = %v %q", m.searching, m.helpLine())
	}
	send(m, "enter")
	if m.searching {
		t.Error("enter did not end the search")
	}
	if got := m.targets[m.selected].label; got != "● Narrow column" {
		t.Errorf("selected = %q, want Narrow column", got)
	}
	if !m.Controller().Mounted() {
		t.Error("search did not open the popup")
	}

	send(m, "/", "z", "z", "z", "enter")
	if !strings.Contains(m.message, "no anchor matches") {
		t.Errorf("message = %q", m.message)
	}
}

func TestModel_CursorRenderHook(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	send(m, "c")
	if m.selected != len(m.targets)-1 {
		t.Fatalf("selected = %d, want the cursor", m.selected)
	}
	if view := m.View(); !strings.Contains(view, "cursor · under") {
		t.Errorf("view missing render hook output:\n%s", view)
	}

	left := m.Controller().Positioning().AnchorRect.Left
	send(m, "l")
	if got := m.Controller().Positioning().AnchorRect.Left; got != left+1 {
		t.Errorf("anchor left = %g, want %g", got, left+1)
	}
}

func TestModel_Resize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if w, h := m.TUI().Size(); w != 100 || h != 30 {
		t.Errorf("size = %dx%d, want 100x30", w, h)
	}
	if got := len(m.TUI().Frame()); got != 30 {
		t.Errorf("frame lines = %d, want 30", got)
	}
	if got := m.docPane.Region().Rect().Height; got != 28 {
		t.Errorf("doc height = %g, want 28", got)
	}
}

func TestModel_Reload(t *testing.T) {
	t.Parallel()

	doc, err := config.ParseDoc("welcome", "---\ntitle: Welcome\n---\nreloaded body\n")
	if err != nil {
		t.Fatalf("ParseDoc: %v", err)
	}
	fail := false
	deps := Deps{Reload: func() (*config.Settings, []config.Doc, error) {
		if fail {
			return nil, nil, errors.New("bad yaml")
		}
		return &config.Settings{Prefab: "float"}, []config.Doc{doc}, nil
	}}
	m := newTestModel(t, deps)

	m.Update(ReloadMsg{Paths: []string{"config.yaml"}})
	if got := len(m.targets); got != 2 {
		t.Errorf("targets = %d, want 2", got)
	}
	if !m.Controller().Mounted() {
		t.Fatal("open popup was not reopened after reload")
	}
	if got := m.Controller().Options().Prefab; got != affix.PrefabFloat {
		t.Errorf("prefab = %q, want float", got)
	}

	fail = true
	m.Update(ReloadMsg{})
	if !strings.HasPrefix(m.message, "reload: bad yaml") {
		t.Errorf("message = %q", m.message)
	}
	if !m.Controller().Mounted() {
		t.Error("failed reload closed the popup")
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Deps{})
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.Controller().Mounted() {
		t.Error("quit left the popup mounted")
	}
}

func TestSampleDocs(t *testing.T) {
	t.Parallel()

	docs := SampleDocs()
	if len(docs) != 4 {
		t.Fatalf("docs = %d, want 4", len(docs))
	}
	if docs[1].Title != "Edge fallback" || len(docs[1].Edges) != 2 {
		t.Errorf("docs[1] = %+v", docs[1])
	}
	if docs[3].Width != 24 {
		t.Errorf("docs[3].Width = %d, want 24", docs[3].Width)
	}
}

func TestMarkdownRenderer_Cache(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRenderer(true)
	if got := r.Render("", 20); got != "" {
		t.Errorf("empty = %q", got)
	}
	a := r.Render("# Title\n\nbody", 30)
	b := r.Render("# Title\n\nbody", 30)
	if a != b {
		t.Error("cached render differs")
	}
	if len(r.cache) != 1 {
		t.Errorf("cache entries = %d, want 1", len(r.cache))
	}
	if !strings.Contains(a, "body") {
		t.Errorf("render = %q", a)
	}
}
