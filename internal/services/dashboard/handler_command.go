package dashboard

import (
	"net/http"
	"strconv"

	"github.com/louisbranch/adpulse/internal/menu"
	apperrors "github.com/louisbranch/adpulse/internal/platform/errors"
	"github.com/louisbranch/adpulse/internal/platform/httpx"
	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
	"github.com/louisbranch/adpulse/internal/services/shared/htmx"
)

// Palette action ids.
const (
	commandToggleTheme = "toggle-theme"
	commandExport      = "export-campaigns"
)

func commandGroups() []menu.Group {
	return []menu.Group{
		{Heading: "Navigation", Commands: []menu.Command{
			{ID: "dashboard", Label: "Go to Dashboard", Keywords: []string{"home", "overview"}, Href: routepath.Root},
			{ID: "campaigns", Label: "Go to Campaigns", Keywords: []string{"table", "ads"}, Href: routepath.Campaigns},
			{ID: "audiences", Label: "Go to Audiences", Keywords: []string{"demographics", "devices"}, Href: routepath.Audiences},
			{ID: "settings", Label: "Go to Settings", Keywords: []string{"preferences", "appearance"}, Href: routepath.Settings},
		}},
		{Heading: "Actions", Commands: []menu.Command{
			{ID: commandToggleTheme, Label: "Toggle Theme", Keywords: []string{"dark", "light", "mode"}},
			{ID: commandExport, Label: "Export Campaign Data", Keywords: []string{"csv", "download"}},
		}},
	}
}

// handleCommand serves the command palette. The palette keeps no server
// state: each request rebuilds it from the query and focus the client
// echoes back, then GET renders it and POST applies a key.
func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeInvalidArgument, "parse command form", err))
			return
		}
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		httpx.WriteError(w, r, apperrors.New(apperrors.CodeMethodNotAllowed, r.Method+" not allowed"))
		return
	}

	palette := menu.NewPalette(commandGroups())
	palette.Open()
	palette.SetQuery(r.FormValue("q"))
	if focus, err := strconv.Atoi(r.FormValue("focus")); err == nil {
		palette.SetFocus(focus)
	}

	if r.Method == http.MethodPost {
		res := palette.HandleKey(menu.ParseKey(r.FormValue("key")))
		if res.Selected != nil {
			h.runCommand(w, r, *res.Selected)
			return
		}
	}
	h.renderFragment(w, r, templates.CommandPalette(commandPaletteView(palette)))
}

func (h *Handler) runCommand(w http.ResponseWriter, r *http.Request, cmd menu.Command) {
	switch {
	case cmd.Href != "":
		httpx.WriteRedirect(w, r, cmd.Href)
	case cmd.ID == commandExport:
		httpx.WriteRedirect(w, r, routepath.CampaignsExport)
	case cmd.ID == commandToggleTheme:
		if err := h.toggleTheme(r); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		htmx.Refresh(w)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.renderFragment(w, r, templates.CommandPalette(templates.CommandPaletteView{}))
	}
}

func commandPaletteView(p *menu.Palette) templates.CommandPaletteView {
	view := templates.CommandPaletteView{
		Open:  p.IsOpen(),
		Query: p.Query(),
		Focus: p.FocusIndex(),
		Empty: p.Empty(),
	}
	index := 0
	for _, group := range p.Groups() {
		gv := templates.CommandGroupView{Heading: group.Heading}
		for _, cmd := range group.Commands {
			gv.Commands = append(gv.Commands, templates.CommandView{
				ID:      cmd.ID,
				Label:   cmd.Label,
				Href:    cmd.Href,
				Index:   index,
				Focused: index == p.FocusIndex(),
			})
			index++
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}
