package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
)

// CommandView is one palette entry.
type CommandView struct {
	ID      string
	Label   string
	Href    string
	Index   int
	Focused bool
}

// CommandGroupView is a headed list of palette entries.
type CommandGroupView struct {
	Heading  string
	Commands []CommandView
}

// CommandPaletteView provides data for the command palette fragment.
type CommandPaletteView struct {
	Open   bool
	Query  string
	Focus  int
	Groups []CommandGroupView
	Empty  bool
}

// CommandPalette renders the palette dialog, or nothing when closed.
func CommandPalette(view CommandPaletteView) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		if !view.Open {
			return
		}
		hw.raw(`<div class="command-dialog" role="dialog" aria-label="Command menu">`)
		hw.raw(`<form class="command-form"`)
		hw.attr("hx-post", routepath.Command)
		hw.attr("hx-target", "#command-palette")
		hw.raw(`><input type="hidden" name="focus"`)
		hw.attr("value", itoa(view.Focus))
		hw.raw(`><input type="hidden" name="key" value="">`)
		hw.raw(`<input type="text" name="q" class="command-input" autocomplete="off" autofocus placeholder="Type a command or search..."`)
		hw.attr("value", view.Query)
		hw.attr("hx-get", routepath.Command)
		hw.attr("hx-trigger", "input changed delay:150ms")
		hw.attr("hx-target", "#command-palette")
		hw.raw(`></form><div class="command-list" role="listbox">`)
		if view.Empty {
			hw.raw(`<div class="command-empty">No results found.</div>`)
		}
		for _, group := range view.Groups {
			hw.raw(`<div class="command-group"><div class="command-heading">`)
			hw.text(group.Heading)
			hw.raw(`</div>`)
			for _, cmd := range group.Commands {
				class := "command-item"
				if cmd.Focused {
					class += " focused"
				}
				hw.raw(`<button type="button" role="option"`)
				hw.attr("class", class)
				hw.attr("aria-selected", boolString(cmd.Focused))
				hw.attr("data-command", cmd.ID)
				hw.attr("hx-post", routepath.Command)
				hw.attr("hx-vals", `{"key":"Enter","focus":"`+itoa(cmd.Index)+`"}`)
				hw.attr("hx-include", "[name=q]")
				hw.attr("hx-target", "#command-palette")
				hw.raw(`>`)
				hw.text(cmd.Label)
				hw.raw(`</button>`)
			}
			hw.raw(`</div>`)
		}
		hw.raw(`</div></div>`)
	})
}
