package templates

import (
	"context"

	"github.com/a-h/templ"
)

// MenuItemView is one rendered dropdown entry.
type MenuItemView struct {
	Index    int
	ID       string
	Label    string
	Kind     string
	Checked  bool
	Disabled bool
	Focused  bool
	Expanded bool
	Submenu  *MenuView
}

// Menu item kinds as rendered.
const (
	MenuItemAction    = "action"
	MenuItemCheckbox  = "checkbox"
	MenuItemSubmenu   = "submenu"
	MenuItemLabel     = "label"
	MenuItemSeparator = "separator"
)

// MenuView is a dropdown menu snapshot. Path addresses the menu for event
// posts: "" for the root, "1" for the submenu at root index 1.
type MenuView struct {
	ID      string
	Trigger string
	Path    string
	Open    bool
	Pending bool
	Items   []MenuItemView
}

// DropdownMenu renders a trigger button and, when open, its popup. Events
// post to endpoint with an action and optional index and key; the response
// replaces target.
func DropdownMenu(view MenuView, endpoint, target string) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<div class="dropdown"`)
		hw.attr("id", view.ID)
		hw.raw(`><button type="button" class="btn btn-outline dropdown-trigger"`)
		hw.attr("aria-haspopup", "menu")
		hw.attr("aria-expanded", boolString(view.Open))
		hw.attr("hx-post", endpoint)
		hw.attr("hx-vals", `{"action":"toggle"}`)
		hw.attr("hx-target", target)
		hw.attr("hx-swap", "outerHTML")
		hw.raw(`>`)
		hw.text(view.Trigger)
		hw.raw(` ▾</button>`)
		if view.Open {
			hw.component(ctx, menuPopup(view, endpoint, target))
		}
		hw.raw(`</div>`)
	})
}

func menuPopup(view MenuView, endpoint, target string) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<div class="dropdown-content" role="menu" tabindex="-1"`)
		hw.attr("data-menu-path", view.Path)
		hw.attr("data-menu-endpoint", endpoint)
		hw.attr("data-menu-target", target)
		if view.Pending {
			// Re-read state once the hover delay has elapsed.
			hw.attr("hx-post", endpoint)
			hw.attr("hx-trigger", "load delay:150ms")
			hw.attr("hx-vals", `{"action":"refresh"}`)
			hw.attr("hx-target", target)
			hw.attr("hx-swap", "outerHTML")
		}
		hw.raw(`>`)
		for _, item := range view.Items {
			switch item.Kind {
			case MenuItemSeparator:
				hw.raw(`<div class="dropdown-separator" role="separator"></div>`)
				continue
			case MenuItemLabel:
				hw.raw(`<div class="dropdown-header">`)
				hw.text(item.Label)
				hw.raw(`</div>`)
				continue
			}
			class := "dropdown-menu-item"
			if item.Focused {
				class += " focused"
			}
			if item.Disabled {
				class += " disabled"
			}
			role := "menuitem"
			if item.Kind == MenuItemCheckbox {
				role = "menuitemcheckbox"
			}
			hw.raw(`<div`)
			hw.attr("class", class)
			hw.attr("role", role)
			hw.attr("data-index", itoa(item.Index))
			if item.Disabled {
				hw.attr("aria-disabled", "true")
			}
			if item.Kind == MenuItemCheckbox {
				hw.attr("aria-checked", boolString(item.Checked))
			}
			if item.Kind == MenuItemSubmenu {
				hw.attr("aria-haspopup", "menu")
				hw.attr("aria-expanded", boolString(item.Expanded))
			}
			if !item.Disabled {
				vals := `{"action":"activate","path":"` + view.Path + `","index":"` + itoa(item.Index) + `"}`
				hw.attr("hx-post", endpoint)
				hw.attr("hx-vals", vals)
				hw.attr("hx-target", target)
				hw.attr("hx-swap", "outerHTML")
				hw.attr("data-hover-path", view.Path)
			}
			hw.raw(`>`)
			if item.Kind == MenuItemCheckbox {
				if item.Checked {
					hw.raw(`<span class="check">✓</span>`)
				} else {
					hw.raw(`<span class="check"></span>`)
				}
			}
			hw.text(item.Label)
			if item.Kind == MenuItemSubmenu {
				hw.raw(` <span class="chevron">›</span>`)
				if item.Expanded && item.Submenu != nil && item.Submenu.Open {
					hw.component(ctx, menuPopup(*item.Submenu, endpoint, target))
				}
			}
			hw.raw(`</div>`)
		}
		hw.raw(`</div>`)
	})
}
