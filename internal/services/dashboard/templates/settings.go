package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
)

// ThemeOption is one appearance choice on the settings page.
type ThemeOption struct {
	Value    string
	Label    string
	Selected bool
}

// SettingsView provides data for the settings page.
type SettingsView struct {
	Themes []ThemeOption
	// Source explains where the active theme came from.
	Source string
	// Message is a status line shown after saving.
	Message string
}

// SettingsPage renders the appearance settings form.
func SettingsPage(view SettingsView) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<section class="page settings"><h1>Settings</h1><div class="card"><h2>Appearance</h2>`)
		hw.raw(`<form method="post" class="theme-form"`)
		hw.attr("action", routepath.SettingsTheme)
		hw.raw(`><fieldset><legend>Theme</legend>`)
		for _, opt := range view.Themes {
			hw.raw(`<label class="radio"><input type="radio" name="theme"`)
			hw.attr("value", opt.Value)
			hw.flag("checked", opt.Selected)
			hw.raw(`> `)
			hw.text(opt.Label)
			hw.raw(`</label>`)
		}
		hw.raw(`</fieldset><p class="muted">`)
		hw.text(view.Source)
		hw.raw(`</p><button type="submit" class="btn">Save</button></form>`)
		if view.Message != "" {
			hw.raw(`<p class="notice" role="status">`)
			hw.text(view.Message)
			hw.raw(`</p>`)
		}
		hw.raw(`</div></section>`)
	})
}
