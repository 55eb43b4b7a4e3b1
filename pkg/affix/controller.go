// ABOUTME: Reposition controller: owns handles, subscriptions and the host container
// ABOUTME: Recomputes on scroll/resize and drops value-equal updates

package affix

import (
	"errors"
	"fmt"

	"github.com/mauromedda/affix-go/internal/log"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

var (
	// ErrAlreadyMounted is returned by Mount on a mounted controller.
	ErrAlreadyMounted = errors.New("overlay already mounted")
	// ErrNotMounted is returned by operations that need a mounted controller.
	ErrNotMounted = errors.New("overlay not mounted")
)

// Controller keeps one popup affixed to one anchor. It is not safe for
// concurrent use; drive it from the host's event goroutine.
type Controller struct {
	host Host
	opts Options
	pos  Positioning

	anchor, popup Handle
	container     HostContainer
	cancels       []func()
	mounted       bool

	listeners map[int]func(Positioning)
	order     []int
	nextID    int
}

// NewController creates an unmounted controller.
func NewController(host Host, opts ...Option) *Controller {
	o := NewOptions(opts...)
	return &Controller{
		host:      host,
		opts:      o,
		pos:       NewPositioning(o.DefaultEdge),
		listeners: make(map[int]func(Positioning)),
	}
}

// Options returns the current configuration.
func (c *Controller) Options() Options { return c.opts }

// Positioning returns the current placement state.
func (c *Controller) Positioning() Positioning { return c.pos }

// Mounted reports whether Mount has succeeded and Unmount has not run since.
func (c *Controller) Mounted() bool { return c.mounted }

// OnChange registers fn to run after every accepted update. The returned
// function removes it.
func (c *Controller) OnChange(fn func(Positioning)) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.order = append(c.order, id)
	return func() { delete(c.listeners, id) }
}

// Mount attaches the host container, subscribes to scroll and resize signals
// and performs the first reposition. Handles may be nil while the host has not
// rendered them; repositioning is then a no-op until a later signal.
func (c *Controller) Mount(anchor, popup Handle) error {
	if c.mounted {
		return ErrAlreadyMounted
	}
	c.anchor, c.popup = anchor, popup
	c.pos = NewPositioning(c.opts.DefaultEdge)

	if err := c.attach(); err != nil {
		return err
	}
	c.subscribe(c.host.OnAncestorScroll(anchor, c.onSignal))
	c.subscribe(c.host.OnViewportResize(c.onSignal))
	c.mounted = true

	c.Reposition()
	return nil
}

// Unmount cancels every subscription and detaches the host container. It is
// safe to call more than once.
func (c *Controller) Unmount() {
	for i := len(c.cancels) - 1; i >= 0; i-- {
		c.cancels[i]()
	}
	c.cancels = nil
	c.detach()
	c.mounted = false
	c.anchor, c.popup = nil, nil
}

// Update replaces the configuration, as a re-render with new props would. The
// default edge only applies to the next Mount. A changed container id, or a
// backdrop callback being added or removed, re-attaches the host container.
// The overlay is then repositioned under the new options.
func (c *Controller) Update(opts ...Option) error {
	next := NewOptions(opts...)
	moved := next.ContainerID != c.opts.ContainerID ||
		(next.OnClickOutside == nil) != (c.opts.OnClickOutside == nil)
	c.opts = next
	if !c.mounted {
		return nil
	}
	if moved {
		c.detach()
		if err := c.attach(); err != nil {
			c.Unmount()
			return err
		}
		c.container.Apply(c.pos)
	} else if r, ok := c.container.(Restyler); ok {
		r.Restyle(next)
	}
	c.Reposition()
	return nil
}

// Reposition measures anchor and popup and recomputes the placement. It
// returns true when the Positioning changed.
func (c *Controller) Reposition() bool {
	if !c.mounted {
		return false
	}
	anchor, ok := c.host.MeasureRegion(c.anchor)
	if !ok {
		return false
	}
	popup, ok := c.host.MeasureRegion(c.popup)
	if !ok {
		return false
	}

	next := Calculate(c.pos, anchor, popup, c.host.ViewportSize(), c.opts)
	if next.Equal(c.pos) {
		return false
	}
	if next.Scheme != c.pos.Scheme {
		log.Debug("affix: scheme %s -> %s", c.pos.Scheme, next.Scheme)
	}
	c.pos = next
	c.container.Apply(next)
	for _, id := range c.order {
		if fn, ok := c.listeners[id]; ok {
			fn(next)
		}
	}
	return true
}

// Bridge returns the connector for the current placement when the bridge is
// enabled and the overlay has been measured.
func (c *Controller) Bridge() (Bridge, bool) {
	if c.opts.Bridge != BridgeArrow {
		return Bridge{}, false
	}
	return BridgeFor(c.pos, c.opts.BridgeSize)
}

// RenderContent runs the Render hook for the active scheme. It reports false
// when no hook is configured, in which case the host shows static content.
func (c *Controller) RenderContent() (string, bool) {
	if c.opts.Render == nil {
		return "", false
	}
	return c.opts.Render(c.pos.Scheme, RenderStateFor(c.pos)), true
}

// ClickBackdrop handles a click on the backdrop at p. OnClickOutside fires
// unless p lies on the placed popup. It reports whether the callback ran.
func (c *Controller) ClickBackdrop(p geom.Vec2) bool {
	if !c.mounted || c.opts.OnClickOutside == nil {
		return false
	}
	if c.pos.Measured && c.pos.PopupRect.Contains(p) {
		return false
	}
	c.opts.OnClickOutside()
	return true
}

func (c *Controller) onSignal() {
	c.Reposition()
}

func (c *Controller) subscribe(cancel func()) {
	if cancel != nil {
		c.cancels = append(c.cancels, cancel)
	}
}

func (c *Controller) attach() error {
	spec := ContainerSpec{
		ParentID: c.opts.ContainerID,
		Popup:    c.popup,
		Options:  c.opts,
	}
	if c.opts.OnClickOutside != nil {
		spec.Backdrop = true
		spec.OnBackdropClick = func(p geom.Vec2) { c.ClickBackdrop(p) }
	}
	container, err := c.host.AttachContainer(spec)
	if err != nil {
		return fmt.Errorf("attaching host container: %w", err)
	}
	c.container = container
	return nil
}

func (c *Controller) detach() {
	if c.container != nil {
		c.container.Detach()
		c.container = nil
	}
}
