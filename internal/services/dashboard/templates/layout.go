package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
	"github.com/louisbranch/adpulse/internal/theme"
)

// Nav keys for the sidebar highlight.
const (
	NavDashboard = "dashboard"
	NavCampaigns = "campaigns"
	NavAudiences = "audiences"
	NavSettings  = "settings"
)

// PageContext carries the chrome around every full page.
type PageContext struct {
	Title  string
	Active string
}

type navLink struct {
	key   string
	label string
	href  string
}

var navLinks = []navLink{
	{NavDashboard, "Dashboard", routepath.Root},
	{NavCampaigns, "Campaigns", routepath.Campaigns},
	{NavAudiences, "Audiences", routepath.Audiences},
	{NavSettings, "Settings", routepath.Settings},
}

// ComposePageTitle renders "<title> | AdPulse".
func ComposePageTitle(title string) string {
	if title == "" {
		return AppName
	}
	return title + " | " + AppName
}

// Layout wraps body in the document shell. The body class follows the
// theme attached to ctx.
func Layout(page PageContext, body templ.Component) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		current := theme.FromContext(ctx).Current()
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<meta http-equiv="Accept-CH" content="Sec-CH-Prefers-Color-Scheme">`)
		hw.raw(`<title>`)
		hw.text(ComposePageTitle(page.Title))
		hw.raw(`</title>`)
		hw.raw(`<link rel="stylesheet" href="` + routepath.StaticPrefix + `app.css">`)
		hw.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		hw.raw(`<script src="` + routepath.StaticPrefix + `app.js" defer></script>`)
		hw.raw(`</head><body`)
		hw.attr("class", current.BodyClass())
		hw.attr("data-theme", string(current))
		hw.raw(`><div class="app-shell"><aside class="sidebar"><div class="brand">`)
		hw.text(AppName)
		hw.raw(`</div><nav>`)
		for _, link := range navLinks {
			hw.raw(`<a`)
			hw.href(link.href)
			class := "nav-link"
			if link.key == page.Active {
				class += " active"
				hw.attr("aria-current", "page")
			}
			hw.attr("class", class)
			hw.raw(`>`)
			hw.text(link.label)
			hw.raw(`</a>`)
		}
		hw.raw(`</nav></aside><div class="content"><header class="topbar">`)
		hw.raw(`<button type="button" class="command-trigger"`)
		hw.attr("hx-get", routepath.Command)
		hw.attr("hx-target", "#command-palette")
		hw.raw(`>Search… <kbd>⌘K</kbd></button>`)
		hw.raw(`<button type="button" class="theme-toggle"`)
		hw.attr("hx-post", routepath.ThemeToggle)
		hw.attr("aria-label", "Toggle theme")
		hw.raw(`>`)
		if current == theme.Dark {
			hw.raw(`☀`)
		} else {
			hw.raw(`☾`)
		}
		hw.raw(`</button></header><main id="main">`)
		hw.component(ctx, body)
		hw.raw(`</main></div></div><div id="command-palette"></div></body></html>`)
	})
}
