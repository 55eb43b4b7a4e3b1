// ABOUTME: Bubble Tea model of the interactive playground: a scrollable document of anchors
// ABOUTME: Popups are affixed through tuihost; keys toggle placement options live

package playground

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/affix-go/internal/config"
	"github.com/mauromedda/affix-go/internal/log"
	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
	"github.com/mauromedda/affix-go/pkg/affix/tuihost"
	"github.com/mauromedda/affix-go/pkg/tui"
	"github.com/mauromedda/affix-go/pkg/tui/fuzzy"
	"github.com/mauromedda/affix-go/pkg/tui/width"
)

const (
	popupGroup    = "popups"
	targetSpacing = 10
	docTopMargin  = 2
	defaultWrap   = 40
	scrollStep    = 3
	cursorLabel   = "cursor"
	cursorGlyph   = "◆"
)

// edgeCycle is the order the edge filter key steps through. Nil means the
// configured edges.
var edgeCycle = [][]affix.Edge{
	nil,
	{affix.EdgeOver},
	{affix.EdgeUnder},
	{affix.EdgeLeft},
	{affix.EdgeRight},
	{affix.EdgeOver, affix.EdgeUnder},
	{affix.EdgeLeft, affix.EdgeRight},
}

var prefabCycle = []affix.Prefab{affix.PrefabNone, affix.PrefabFloat, affix.PrefabCallout}

// Deps are the playground's inputs.
type Deps struct {
	Settings *config.Settings
	// Docs are the popup documents. Empty means the built-in samples.
	Docs []config.Doc
	// Reload re-reads settings and documents. Nil disables reloading.
	Reload func() (*config.Settings, []config.Doc, error)
	// Watch lists the files whose changes trigger a reload.
	Watch []string
	Dark  bool
}

// ReloadMsg asks the model to re-read its configuration.
type ReloadMsg struct{ Paths []string }

type target struct {
	label  string
	doc    *config.Doc // nil for the cursor
	region *tui.Region
	popup  *tuihost.Popup
}

// Model is the playground's tea.Model. All engine calls happen inside Update.
type Model struct {
	deps     Deps
	settings *config.Settings
	docs     []config.Doc
	md       *MarkdownRenderer

	ui   *tui.TUI
	host *tuihost.Host
	ctrl *affix.Controller

	status, help, docText      *tui.Text
	statusPane, docPane, helpP *tui.Pane

	targets  []*target
	selected int
	open     bool
	flips    int

	edgeMode int
	align    *affix.Alignment
	bridge   *bool
	prefab   *affix.Prefab

	cursor    geom.Vec2
	docLines  int
	searching bool
	query     string
	message   string
}

var _ tea.Model = (*Model)(nil)

// NewModel builds the surface at 80x24 and opens the first popup. The first
// WindowSizeMsg resizes it.
func NewModel(deps Deps) *Model {
	m := &Model{
		deps:     deps,
		settings: deps.Settings,
		docs:     deps.Docs,
		md:       NewMarkdownRenderer(deps.Dark),
		cursor:   geom.V(30, 5),
	}
	if m.settings == nil {
		m.settings = &config.Settings{}
	}
	if len(m.docs) == 0 {
		m.docs = SampleDocs()
	}

	const w, h = 80, 24
	m.ui = tui.New(nil, w, h)
	if err := m.ui.AddGroup(popupGroup); err != nil {
		log.Warn("playground: %v", err)
	}
	m.host = tuihost.New(m.ui, tuihost.DefaultStyles(m.dark()))
	m.ctrl = affix.NewController(m.host)
	var last affix.Edge
	m.ctrl.OnChange(func(p affix.Positioning) {
		if last != "" && p.Scheme != last {
			m.flips++
		}
		last = p.Scheme
	})

	m.status = tui.NewText("")
	m.help = tui.NewText("")
	m.docText = tui.NewText("")
	m.statusPane = m.ui.AddPane("status", nil, geom.R(0, 0, w, 1), m.status)
	m.docPane = m.ui.AddPane("doc", nil, geom.R(0, 1, w, h-2), m.docText)
	m.helpP = m.ui.AddPane("help", nil, geom.R(0, h-1, w, 1), m.help)

	m.rebuildTargets()
	if len(m.targets) > 0 {
		m.openTarget(0)
	}
	return m
}

func (m *Model) dark() bool {
	switch strings.ToLower(m.settings.Theme) {
	case "light":
		return false
	case "dark":
		return true
	}
	return m.deps.Dark
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update routes messages to the appropriate handler.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.searching {
			m.handleSearchKey(msg)
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case ReloadMsg:
		m.reload(msg.Paths)
	}
	return m, nil
}

// View renders the composited frame.
func (m *Model) View() string {
	m.status.SetText(m.statusLine())
	m.help.SetText(m.helpLine())
	return strings.Join(m.ui.Frame(), "\n")
}

// TUI returns the surface, for tests and snapshots.
func (m *Model) TUI() *tui.TUI { return m.ui }

// Controller returns the overlay controller.
func (m *Model) Controller() *affix.Controller { return m.ctrl }

func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	docH := max(1, h-2)
	m.statusPane.Region().SetRect(geom.R(0, 0, float64(w), 1))
	m.docPane.Region().SetRect(geom.R(0, 1, float64(w), float64(docH)))
	m.helpP.Region().SetRect(geom.R(0, float64(h-1), float64(w), 1))
	m.ui.SetSize(w, h)
}

// --- Targets ---

func (m *Model) rebuildTargets() {
	parent := m.docPane.Region()
	pw, _ := m.ui.Size()
	spread := max(1, pw/2)

	m.targets = m.targets[:0]
	for i := range m.docs {
		d := &m.docs[i]
		label := "● " + d.Title
		row := docTopMargin + i*targetSpacing
		col := 2 + (i*17)%spread
		wrap := d.Width
		if wrap <= 0 {
			wrap = defaultWrap
		}
		m.targets = append(m.targets, &target{
			label:  label,
			doc:    d,
			region: m.ui.NewRegion(d.Anchor, parent, geom.R(float64(col), float64(row), float64(width.VisibleWidth(label)), 1)),
			popup:  tuihost.NewPopup(d.Name, m.md.Render(d.Body, wrap)),
		})
	}
	m.targets = append(m.targets, &target{
		label:  cursorLabel,
		region: m.ui.NewRegion(cursorLabel, parent, geom.RectAt(m.cursor, geom.V(1, 1))),
		popup:  tuihost.NewPopup(cursorLabel, ""),
	})

	m.docLines = docTopMargin + len(m.docs)*targetSpacing + 20
	m.renderDoc()
}

func (m *Model) renderDoc() {
	labelStyle := lipgloss.NewStyle().Bold(true).Underline(true)
	lines := make([]string, m.docLines)
	for _, t := range m.targets {
		if t.doc == nil {
			continue
		}
		r := t.region.Rect()
		row, col := int(r.Top), int(r.Left)
		if row >= 0 && row < len(lines) {
			lines[row] = width.Splice(lines[row], labelStyle.Render(t.label), col)
		}
	}
	cy, cx := int(m.cursor.Y), int(m.cursor.X)
	if cy >= 0 && cy < len(lines) {
		lines[cy] = width.Splice(lines[cy], cursorGlyph, cx)
	}
	m.docText.SetText(strings.Join(lines, "\n"))
	// Re-measure the document and clamp its scroll.
	m.ui.ScrollBy(m.docPane.Region(), geom.Vec2{})
}

func (m *Model) options(t *target) []affix.Option {
	opts := []affix.Option{affix.WithBridgeSize(1)}
	s := m.settings
	if t.doc != nil {
		s = t.doc.Overlay(s)
	}
	so, err := s.Options()
	if err != nil {
		m.message = err.Error()
		log.Warn("playground: %v", err)
	} else {
		opts = append(opts, so...)
	}

	if e := edgeCycle[m.edgeMode]; e != nil {
		opts = append(opts, affix.WithEdges(e...))
	}
	if m.align != nil {
		opts = append(opts, affix.WithAlign(*m.align))
	}
	if m.bridge != nil {
		kind := affix.BridgeNone
		if *m.bridge {
			kind = affix.BridgeArrow
		}
		opts = append(opts, affix.WithBridge(kind))
	}
	if m.prefab != nil {
		opts = append(opts, affix.WithPrefab(*m.prefab))
	}
	opts = append(opts, affix.WithContainerID(popupGroup))
	if m.settings.BackdropEnabled() {
		opts = append(opts, affix.WithOnClickOutside(m.closePopup))
	}
	if t.doc == nil {
		opts = append(opts, affix.WithRender(cursorReadout))
	}
	return opts
}

func cursorReadout(scheme affix.Edge, st affix.RenderState) string {
	if !st.Measured {
		return fmt.Sprintf("cursor · %s\nmeasuring", scheme)
	}
	return fmt.Sprintf("cursor · %s\nanchor %g..%g\npopup  %g..%g",
		scheme, st.Anchor.Min, st.Anchor.Max, st.Popup.Min, st.Popup.Max)
}

func (m *Model) openTarget(i int) {
	if i < 0 || i >= len(m.targets) {
		return
	}
	m.ctrl.Unmount()
	m.selected = i
	t := m.targets[i]
	if err := m.ctrl.Update(m.options(t)...); err != nil {
		m.message = err.Error()
		return
	}
	if err := m.ctrl.Mount(t.region, t.popup); err != nil {
		m.message = err.Error()
		m.open = false
		log.Error("playground: mount %s: %v", t.label, err)
		return
	}
	m.open = true
	log.Debug("playground: opened %s", t.label)
}

func (m *Model) closePopup() {
	m.ctrl.Unmount()
	m.open = false
}

func (m *Model) restyle() {
	if !m.open {
		return
	}
	if err := m.ctrl.Update(m.options(m.targets[m.selected])...); err != nil {
		m.message = err.Error()
		m.open = false
	}
}

func (m *Model) scrollIntoView(t *target) {
	_, h := m.ui.Size()
	top := t.region.Rect().Top - float64(max(1, h-2)/3)
	m.ui.ScrollTo(m.docPane.Region(), geom.V(0, top))
}

func (m *Model) moveCursor(dx, dy float64) {
	pw, _ := m.ui.Size()
	m.cursor = geom.V(
		geom.Clamp(m.cursor.X+dx, 0, float64(pw-1)),
		geom.Clamp(m.cursor.Y+dy, 0, float64(m.docLines-1)),
	)
	cur := m.targets[len(m.targets)-1]
	cur.region.SetRect(geom.RectAt(m.cursor, geom.V(1, 1)))
	m.renderDoc()
	if m.open && m.selected == len(m.targets)-1 {
		m.ctrl.Reposition()
	}
}

// --- Input ---

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	doc := m.docPane.Region()
	switch msg.String() {
	case "ctrl+c", "q":
		m.ctrl.Unmount()
		return m, tea.Quit
	case "tab":
		m.openTarget((m.selected + 1) % len(m.targets))
		m.scrollIntoView(m.targets[m.selected])
	case "shift+tab":
		m.openTarget((m.selected - 1 + len(m.targets)) % len(m.targets))
		m.scrollIntoView(m.targets[m.selected])
	case "enter", " ":
		if m.open {
			m.closePopup()
		} else {
			m.openTarget(m.selected)
		}
	case "esc":
		m.closePopup()
	case "c":
		m.openTarget(len(m.targets) - 1)
	case "up":
		m.ui.ScrollBy(doc, geom.V(0, -1))
	case "down":
		m.ui.ScrollBy(doc, geom.V(0, 1))
	case "pgup":
		m.ui.ScrollBy(doc, geom.V(0, -doc.Rect().Height))
	case "pgdown":
		m.ui.ScrollBy(doc, geom.V(0, doc.Rect().Height))
	case "h":
		m.moveCursor(-1, 0)
	case "l":
		m.moveCursor(1, 0)
	case "k":
		m.moveCursor(0, -1)
	case "j":
		m.moveCursor(0, 1)
	case "e":
		m.edgeMode = (m.edgeMode + 1) % len(edgeCycle)
		m.restyle()
	case "a":
		next := affix.AlignCenter
		if m.ctrl.Options().Align == affix.AlignCenter {
			next = affix.AlignEdge
		}
		m.align = &next
		m.restyle()
	case "b":
		on := m.ctrl.Options().Bridge != affix.BridgeArrow
		m.bridge = &on
		m.restyle()
	case "p":
		cur := m.ctrl.Options().Prefab
		next := prefabCycle[0]
		for i, p := range prefabCycle {
			if p == cur {
				next = prefabCycle[(i+1)%len(prefabCycle)]
			}
		}
		m.prefab = &next
		m.restyle()
	case "r":
		m.reload(nil)
	case "/":
		m.searching = true
		m.query = ""
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.jump(m.query)
	case tea.KeyEsc:
		m.searching = false
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
}

type targetLabels []*target

func (l targetLabels) String(i int) string { return l[i].label }
func (l targetLabels) Len() int            { return len(l) }

func (m *Model) jump(query string) {
	match, ok := fuzzy.Best(query, targetLabels(m.targets))
	if !ok {
		m.message = fmt.Sprintf("no anchor matches %q", query)
		return
	}
	m.scrollIntoView(m.targets[match.Index])
	m.openTarget(match.Index)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	doc := m.docPane.Region()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ui.ScrollBy(doc, geom.V(0, -scrollStep))
		return
	case tea.MouseButtonWheelDown:
		m.ui.ScrollBy(doc, geom.V(0, scrollStep))
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	p := geom.V(float64(msg.X), float64(msg.Y))
	if m.ui.Click(p) {
		return
	}
	if m.open {
		if l := m.targets[m.selected].popup.Layer(); l != nil && l.Rect().Contains(p) {
			return
		}
	}
	for i, t := range m.targets {
		if t.region.Absolute().Contains(p) {
			m.openTarget(i)
			return
		}
	}
}

// --- Reload ---

func (m *Model) reload(paths []string) {
	if m.deps.Reload == nil {
		return
	}
	s, docs, err := m.deps.Reload()
	if err != nil {
		m.message = "reload: " + err.Error()
		log.Warn("playground: reload: %v", err)
		return
	}
	log.Info("playground: reloaded after changes to %v", paths)

	var reopen string
	if m.open {
		reopen = m.targets[m.selected].label
	}
	m.ctrl.Unmount()
	m.open = false

	if s == nil {
		s = &config.Settings{}
	}
	if len(docs) == 0 {
		docs = SampleDocs()
	}
	m.settings, m.docs = s, docs
	m.rebuildTargets()

	m.selected = 0
	for i, t := range m.targets {
		if t.label == reopen {
			m.openTarget(i)
			break
		}
	}
	m.message = "reloaded"
}

// --- Chrome ---

func (m *Model) statusLine() string {
	o := m.ctrl.Options()
	name, scheme := "closed", "-"
	if m.open {
		name = m.targets[m.selected].label
		scheme = string(m.ctrl.Positioning().Scheme)
	}
	edges := "all"
	if o.Edges != nil {
		parts := make([]string, len(o.Edges))
		for i, e := range o.Edges {
			parts[i] = string(e)
		}
		edges = strings.Join(parts, ",")
	}
	bridge := "off"
	if o.Bridge == affix.BridgeArrow {
		bridge = "on"
	}
	prefab := string(o.Prefab)
	if prefab == "" {
		prefab = "none"
	}
	line := fmt.Sprintf(" %s │ scheme %s │ align %s │ edges %s │ bridge %s │ prefab %s │ flips %d",
		name, scheme, o.Align, edges, bridge, prefab, m.flips)
	if m.message != "" {
		line += " │ " + m.message
	}
	return lipgloss.NewStyle().Reverse(true).Render(line)
}

func (m *Model) helpLine() string {
	if m.searching {
		return "/" + m.query
	}
	return lipgloss.NewStyle().Faint(true).Render(
		" tab next · / find · hjkl cursor · e edges · a align · b bridge · p prefab · esc close · q quit")
}
