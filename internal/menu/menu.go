package menu

import (
	"sync"
	"time"
)

// DefaultSubmenuDelay is the pointer hover delay before a submenu opens or
// closes.
const DefaultSubmenuDelay = 100 * time.Millisecond

// Kind classifies a menu entry.
type Kind int

const (
	KindAction Kind = iota
	KindCheckbox
	KindSubmenu
	KindLabel
	KindSeparator
)

// Item is one entry of a menu.
type Item struct {
	ID    string
	Label string
	Kind  Kind
	// Disabled items are skipped by keyboard focus and ignore activation.
	Disabled bool
	// KeepOpen leaves the menu open after the item is activated.
	KeepOpen bool
	// Checked is the state of a KindCheckbox item. Activation flips it.
	Checked  bool
	OnSelect func()
	Submenu  *Menu
}

func (it Item) focusable() bool {
	if it.Disabled {
		return false
	}
	switch it.Kind {
	case KindAction, KindCheckbox, KindSubmenu:
		return true
	default:
		return false
	}
}

// Separator returns a divider entry.
func Separator() Item {
	return Item{Kind: KindSeparator}
}

// Label returns a non-interactive heading entry.
func Label(text string) Item {
	return Item{Kind: KindLabel, Label: text}
}

// Sub returns an entry that expands child.
func Sub(id, label string, child *Menu) Item {
	return Item{ID: id, Label: label, Kind: KindSubmenu, Submenu: child}
}

// Options configures a Menu.
type Options struct {
	// Clock schedules submenu delays. Defaults to SystemClock.
	Clock Clock
	// SubmenuDelay defaults to DefaultSubmenuDelay.
	SubmenuDelay time.Duration
	// OnOpenChange is called after the open state flips.
	OnOpenChange func(open bool)
}

// Result reports the effect of an event.
type Result struct {
	// Handled is false when the event did not apply to the menu state.
	Handled bool
	// Activated is the id of the item that was activated, if any.
	Activated string
	// Closed reports that the event closed the menu.
	Closed bool
}

// View is a consistent snapshot of a menu for rendering.
type View struct {
	Open     bool
	Focus    int
	Expanded int
	Items    []Item
	// Pending reports a hover transition waiting on the submenu delay.
	Pending bool
}

// Menu is a popup menu state machine: closed until its trigger is
// activated, then open until an outside click, Escape, or activation of an
// item that does not keep it open. It is safe for concurrent use because
// submenu delays fire on timer goroutines.
type Menu struct {
	mu       sync.Mutex
	items    []Item
	open     bool
	focus    int
	expanded int
	parent   *Menu

	clock        Clock
	delay        time.Duration
	pending      Timer
	gen          uint64
	onOpenChange func(bool)
}

// New builds a closed menu.
func New(items []Item, opts Options) *Menu {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.SubmenuDelay <= 0 {
		opts.SubmenuDelay = DefaultSubmenuDelay
	}
	m := &Menu{
		focus:        -1,
		expanded:     -1,
		clock:        opts.Clock,
		delay:        opts.SubmenuDelay,
		onOpenChange: opts.OnOpenChange,
	}
	m.setItemsLocked(items)
	return m
}

// effects are callbacks deferred until every menu lock is released.
type effects []func()

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}

// SetItems replaces the entries, keeping the open state. Focus moves to the
// nearest focusable entry when the focused one is gone.
func (m *Menu) SetItems(items []Item) {
	m.mu.Lock()
	var fx effects
	if m.expanded >= 0 && (m.expanded >= len(items) || items[m.expanded].Submenu != m.items[m.expanded].Submenu) {
		fx = m.collapseLocked()
	}
	m.setItemsLocked(items)
	if m.open && (m.focus >= len(m.items) || (m.focus >= 0 && !m.items[m.focus].focusable())) {
		m.focus = m.firstLocked()
	}
	m.mu.Unlock()
	fx.run()
}

func (m *Menu) setItemsLocked(items []Item) {
	m.items = append([]Item(nil), items...)
	for _, it := range m.items {
		if it.Submenu != nil && it.Submenu != m {
			it.Submenu.mu.Lock()
			it.Submenu.parent = m
			it.Submenu.mu.Unlock()
		}
	}
}

// View returns a snapshot for rendering.
func (m *Menu) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{
		Open:     m.open,
		Focus:    m.focus,
		Expanded: m.expanded,
		Items:    append([]Item(nil), m.items...),
		Pending:  m.pending != nil,
	}
}

// IsOpen reports whether the popup is shown.
func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Focused returns the index of the focused item, -1 when none.
func (m *Menu) Focused() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focus
}

// Expanded returns the index of the open submenu entry, -1 when none.
func (m *Menu) Expanded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expanded
}

// Open shows the popup and focuses the first enabled item.
func (m *Menu) Open() {
	m.mu.Lock()
	fx := m.setOpenLocked(true)
	m.mu.Unlock()
	fx.run()
}

// Close hides the popup and any open submenu.
func (m *Menu) Close() {
	m.mu.Lock()
	fx := m.setOpenLocked(false)
	m.mu.Unlock()
	fx.run()
}

// Toggle flips the popup, as activating the trigger does.
func (m *Menu) Toggle() {
	m.mu.Lock()
	fx := m.setOpenLocked(!m.open)
	m.mu.Unlock()
	fx.run()
}

// ClickOutside closes an open menu and reports whether it did.
func (m *Menu) ClickOutside() bool {
	m.mu.Lock()
	wasOpen := m.open
	fx := m.setOpenLocked(false)
	m.mu.Unlock()
	fx.run()
	return wasOpen
}

// Focus moves keyboard focus to index when that item can take it.
func (m *Menu) Focus(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || index < 0 || index >= len(m.items) || !m.items[index].focusable() {
		return false
	}
	m.focus = index
	return true
}

// HandleKey applies a key press. While a submenu is expanded, keys go to
// it; ArrowLeft collapses it and Escape closes the whole menu.
func (m *Menu) HandleKey(k Key) Result {
	m.mu.Lock()
	res, fx := m.handleKeyLocked(k)
	m.mu.Unlock()
	fx.run()
	return res
}

func (m *Menu) handleKeyLocked(k Key) (Result, effects) {
	if !m.open {
		if k == KeyEnter || k == KeySpace {
			return Result{Handled: true}, m.setOpenLocked(true)
		}
		return Result{}, nil
	}
	if k == KeyEscape || k == KeyTab {
		return Result{Handled: true, Closed: true}, m.setOpenLocked(false)
	}

	if m.expanded >= 0 {
		child := m.items[m.expanded].Submenu
		child.mu.Lock()
		if k == KeyArrowLeft && child.expanded < 0 {
			child.mu.Unlock()
			return Result{Handled: true}, m.collapseLocked()
		}
		res, fx := child.handleKeyLocked(k)
		child.mu.Unlock()
		if res.Closed {
			fx = append(fx, m.setOpenLocked(false)...)
		}
		return res, fx
	}

	switch k {
	case KeyArrowDown:
		m.focus = m.nextLocked(m.focus, 1)
	case KeyArrowUp:
		m.focus = m.nextLocked(m.focus, -1)
	case KeyHome:
		m.focus = m.firstLocked()
	case KeyEnd:
		m.focus = m.lastLocked()
	case KeyEnter, KeySpace:
		if m.focus < 0 {
			return Result{Handled: true, Closed: true}, m.setOpenLocked(false)
		}
		return m.activateLocked(m.focus)
	case KeyArrowRight:
		if m.focus < 0 || m.items[m.focus].Kind != KindSubmenu {
			return Result{}, nil
		}
		m.cancelPendingLocked()
		return Result{Handled: true}, m.expandLocked(m.focus)
	default:
		return Result{}, nil
	}
	return Result{Handled: true}, nil
}

// Activate selects the item at index, as a click does. Submenu entries
// expand immediately. The menu closes afterwards unless the item keeps it
// open; closing a submenu this way closes its parents too.
func (m *Menu) Activate(index int) Result {
	m.mu.Lock()
	var res Result
	var fx effects
	if m.open {
		res, fx = m.activateLocked(index)
	}
	parent := m.parent
	m.mu.Unlock()
	fx.run()
	if res.Closed && parent != nil {
		parent.Close()
	}
	return res
}

func (m *Menu) activateLocked(index int) (Result, effects) {
	if index < 0 || index >= len(m.items) || !m.items[index].focusable() {
		return Result{}, nil
	}
	m.focus = index
	it := &m.items[index]
	if it.Kind == KindSubmenu {
		m.cancelPendingLocked()
		return Result{Handled: true}, m.expandLocked(index)
	}

	fx := m.collapseLocked()
	if it.Kind == KindCheckbox {
		it.Checked = !it.Checked
	}
	if it.OnSelect != nil {
		fx = append(fx, it.OnSelect)
	}
	res := Result{Handled: true, Activated: it.ID}
	if !it.KeepOpen {
		fx = append(fx, m.setOpenLocked(false)...)
		res.Closed = true
	}
	return res, fx
}

// PointerEnter focuses the hovered item. Hovering a submenu entry expands
// it after the submenu delay; hovering another entry collapses the open
// submenu after the same delay.
func (m *Menu) PointerEnter(index int) {
	m.mu.Lock()
	if !m.open || index < 0 || index >= len(m.items) || !m.items[index].focusable() {
		m.mu.Unlock()
		return
	}
	m.focus = index
	switch {
	case m.items[index].Kind == KindSubmenu && m.expanded != index:
		m.scheduleLocked(index, true)
	case m.items[index].Kind == KindSubmenu:
		m.cancelPendingLocked()
	case m.expanded >= 0:
		m.scheduleLocked(m.expanded, false)
	}
	parent := m.parent
	m.mu.Unlock()
	if parent != nil {
		parent.holdOpen()
	}
}

// PointerLeave schedules the submenu at index to collapse, cancelling a
// pending expansion of it.
func (m *Menu) PointerLeave(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || index < 0 || index >= len(m.items) || m.items[index].Kind != KindSubmenu {
		return
	}
	m.scheduleLocked(index, false)
}

// holdOpen cancels a pending collapse while the pointer is inside a child.
func (m *Menu) holdOpen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		m.cancelPendingLocked()
	}
}

func (m *Menu) scheduleLocked(index int, expand bool) {
	m.cancelPendingLocked()
	gen := m.gen
	m.pending = m.clock.AfterFunc(m.delay, func() { m.fire(gen, index, expand) })
}

func (m *Menu) fire(gen uint64, index int, expand bool) {
	m.mu.Lock()
	if gen != m.gen || !m.open {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	var fx effects
	switch {
	case expand && index < len(m.items) && m.items[index].Kind == KindSubmenu:
		fx = m.expandLocked(index)
	case !expand && m.expanded == index:
		fx = m.collapseLocked()
	}
	m.mu.Unlock()
	fx.run()
}

func (m *Menu) cancelPendingLocked() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.gen++
}

func (m *Menu) setOpenLocked(open bool) effects {
	if m.open == open {
		return nil
	}
	m.cancelPendingLocked()
	var fx effects
	if open {
		m.open = true
		m.focus = m.firstLocked()
	} else {
		fx = m.collapseLocked()
		m.open = false
		m.focus = -1
	}
	if cb := m.onOpenChange; cb != nil {
		fx = append(fx, func() { cb(open) })
	}
	return fx
}

func (m *Menu) expandLocked(index int) effects {
	if m.expanded == index {
		return nil
	}
	fx := m.collapseLocked()
	child := m.items[index].Submenu
	if child == nil {
		return fx
	}
	m.expanded = index
	child.mu.Lock()
	defer child.mu.Unlock()
	return append(fx, child.setOpenLocked(true)...)
}

func (m *Menu) collapseLocked() effects {
	if m.expanded < 0 {
		return nil
	}
	child := m.items[m.expanded].Submenu
	m.expanded = -1
	if child == nil {
		return nil
	}
	child.mu.Lock()
	defer child.mu.Unlock()
	return child.setOpenLocked(false)
}

func (m *Menu) firstLocked() int {
	for i, it := range m.items {
		if it.focusable() {
			return i
		}
	}
	return -1
}

func (m *Menu) lastLocked() int {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].focusable() {
			return i
		}
	}
	return -1
}

// nextLocked steps focus by delta with wraparound. Without focus, forward
// goes to the first item and backward to the last.
func (m *Menu) nextLocked(from, delta int) int {
	if from < 0 || from >= len(m.items) {
		if delta > 0 {
			return m.firstLocked()
		}
		return m.lastLocked()
	}
	n := len(m.items)
	for step := 1; step <= n; step++ {
		i := ((from+delta*step)%n + n) % n
		if m.items[i].focusable() {
			return i
		}
	}
	return from
}
