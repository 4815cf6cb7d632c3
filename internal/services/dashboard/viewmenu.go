package dashboard

import (
	"strconv"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/menu"
	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
	"github.com/louisbranch/adpulse/internal/table"
)

// pageSizes are the page sizes offered by the table controls.
var pageSizes = []int{5, 10, 20, 50}

// Menu event actions posted by the View dropdown.
const (
	menuActionToggle   = "toggle"
	menuActionActivate = "activate"
	menuActionHover    = "hover"
	menuActionLeave    = "leave"
	menuActionKey      = "key"
	menuActionOutside  = "outside"
	menuActionRefresh  = "refresh"
)

// menuEvent is one decoded View menu interaction.
type menuEvent struct {
	Action string
	// Path addresses the menu: "" for the root, a root index for a submenu.
	Path  string
	Index int
	Key   string
}

// viewMenu is the campaigns table's View dropdown: column visibility
// checkboxes, a page size submenu and a reset action. Item state is
// rebuilt from the engine before each render so changes made elsewhere
// (the page size select, a reset) show up.
type viewMenu struct {
	engine *table.Engine[campaign.Record]
	root   *menu.Menu
	sizes  *menu.Menu
}

func newViewMenu(engine *table.Engine[campaign.Record], clock menu.Clock) *viewMenu {
	v := &viewMenu{engine: engine}
	v.sizes = menu.New(nil, menu.Options{Clock: clock})
	v.root = menu.New(nil, menu.Options{Clock: clock})
	v.sync()
	return v
}

// sync rebuilds item state from the engine.
func (v *viewMenu) sync() {
	size := v.engine.State().Pagination.PageSize
	sizeItems := make([]menu.Item, 0, len(pageSizes))
	for _, n := range pageSizes {
		sizeItems = append(sizeItems, menu.Item{
			ID:       "size:" + strconv.Itoa(n),
			Label:    strconv.Itoa(n) + " rows",
			Kind:     menu.KindCheckbox,
			Checked:  n == size,
			OnSelect: func() { v.engine.SetPageSize(n) },
		})
	}
	v.sizes.SetItems(sizeItems)

	items := []menu.Item{menu.Label("Toggle columns")}
	for _, col := range v.engine.Columns() {
		if !col.Hideable() {
			continue
		}
		key := col.Key
		items = append(items, menu.Item{
			ID:       "column:" + key,
			Label:    col.Header,
			Kind:     menu.KindCheckbox,
			KeepOpen: true,
			Checked:  v.engine.IsColumnVisible(key),
			OnSelect: func() { v.engine.ToggleColumnVisibility(key, !v.engine.IsColumnVisible(key)) },
		})
	}
	items = append(items,
		menu.Separator(),
		menu.Sub("page-size", "Rows per page", v.sizes),
		menu.Separator(),
		menu.Item{ID: "reset", Label: "Reset view", Kind: menu.KindAction, OnSelect: v.reset},
	)
	v.root.SetItems(items)
}

// reset shows every column and clears search, filters and sorting.
func (v *viewMenu) reset() {
	state := v.engine.State()
	state.GlobalFilter = ""
	state.ColumnFilters = map[string]string{}
	state.Sort = nil
	state.ColumnVisibility = map[string]bool{}
	state.Pagination.PageIndex = 0
	v.engine.SetState(state)
}

// target resolves an event path to the menu it addresses.
func (v *viewMenu) target(path string) (*menu.Menu, error) {
	if path == "" {
		return v.root, nil
	}
	index, err := strconv.Atoi(path)
	if err != nil {
		return nil, invalidArgument("path", err)
	}
	items := v.root.View().Items
	if index < 0 || index >= len(items) || items[index].Submenu == nil {
		return nil, invalidArgument("path", nil)
	}
	return items[index].Submenu, nil
}

// apply runs ev against the menu, then resyncs item state.
func (v *viewMenu) apply(ev menuEvent) error {
	switch ev.Action {
	case menuActionToggle:
		v.root.Toggle()
	case menuActionOutside:
		v.root.ClickOutside()
	case menuActionKey:
		key := menu.ParseKey(ev.Key)
		if key == "" {
			return invalidArgument("key", nil)
		}
		v.root.HandleKey(key)
	case menuActionActivate, menuActionHover, menuActionLeave:
		m, err := v.target(ev.Path)
		if err != nil {
			return err
		}
		switch ev.Action {
		case menuActionActivate:
			m.Activate(ev.Index)
		case menuActionHover:
			m.PointerEnter(ev.Index)
		default:
			m.PointerLeave(ev.Index)
		}
	case menuActionRefresh:
	default:
		return invalidArgument("action", nil)
	}
	v.sync()
	return nil
}

// view renders the current menu state.
func (v *viewMenu) view() templates.MenuView {
	view := menuView(v.root, "")
	view.ID = "view-menu"
	view.Trigger = "View"
	return view
}

func menuView(m *menu.Menu, path string) templates.MenuView {
	snapshot := m.View()
	out := templates.MenuView{Path: path, Open: snapshot.Open, Pending: snapshot.Pending}
	for i, item := range snapshot.Items {
		iv := templates.MenuItemView{
			Index:    i,
			ID:       item.ID,
			Label:    item.Label,
			Kind:     menuItemKind(item.Kind),
			Checked:  item.Checked,
			Disabled: item.Disabled,
			Focused:  snapshot.Focus == i,
			Expanded: snapshot.Expanded == i,
		}
		if iv.Expanded && item.Submenu != nil {
			sub := menuView(item.Submenu, strconv.Itoa(i))
			iv.Submenu = &sub
			out.Pending = out.Pending || sub.Pending
		}
		out.Items = append(out.Items, iv)
	}
	return out
}

func menuItemKind(k menu.Kind) string {
	switch k {
	case menu.KindCheckbox:
		return templates.MenuItemCheckbox
	case menu.KindSubmenu:
		return templates.MenuItemSubmenu
	case menu.KindLabel:
		return templates.MenuItemLabel
	case menu.KindSeparator:
		return templates.MenuItemSeparator
	default:
		return templates.MenuItemAction
	}
}
