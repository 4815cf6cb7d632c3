package dashboard

import (
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/adpulse/internal/platform/errors"
	"github.com/louisbranch/adpulse/internal/platform/httpx"
	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
	"github.com/louisbranch/adpulse/internal/services/shared/htmx"
	"github.com/louisbranch/adpulse/internal/theme"
)

// savedParam marks a settings page shown right after a successful save.
const savedParam = "saved"

var themeSourceText = map[theme.Source]string{
	theme.SourceStored:  "Saved for this browser.",
	theme.SourceSystem:  "Following your system preference.",
	theme.SourceDefault: "Using the default appearance.",
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	tc := theme.FromContext(r.Context())
	view := templates.SettingsView{Source: themeSourceText[tc.Source()]}
	for _, t := range []theme.Theme{theme.Light, theme.Dark} {
		view.Themes = append(view.Themes, templates.ThemeOption{
			Value:    string(t),
			Label:    themeLabel(t),
			Selected: tc.Current() == t,
		})
	}
	if r.URL.Query().Get(savedParam) != "" {
		view.Message = "Appearance saved."
	}
	h.renderPage(w, r, templates.PageContext{Title: "Settings", Active: templates.NavSettings}, templates.SettingsPage(view))
}

func themeLabel(t theme.Theme) string {
	if t == theme.Dark {
		return "Dark"
	}
	return "Light"
}

func (h *Handler) handleSettingsTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeInvalidArgument, "parse settings form", err))
		return
	}
	raw := r.FormValue("theme")
	next, ok := theme.Parse(raw)
	if !ok {
		httpx.WriteError(w, r, apperrors.WithMetadata(apperrors.CodeInvalidTheme, "unknown theme", map[string]string{"Theme": raw}))
		return
	}
	if err := theme.FromContext(r.Context()).Set(r.Context(), next); err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeStorageUnavailable, "save theme", err))
		return
	}
	httpx.WriteRedirect(w, r, routepath.WithQuery(routepath.Settings, url.Values{savedParam: {"1"}}))
}

// handleThemeToggle flips the theme. HTMX callers reload in place; plain
// form posts return to the referring page.
func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	if err := h.toggleTheme(r); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if httpx.IsHTMXRequest(r) {
		htmx.Refresh(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.WriteRedirect(w, r, localReferer(r))
}

func (h *Handler) toggleTheme(r *http.Request) error {
	if _, err := theme.FromContext(r.Context()).Toggle(r.Context()); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageUnavailable, "toggle theme", err)
	}
	return nil
}

// localReferer returns the path of a same-host Referer, else the root.
func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") {
		return routepath.Root
	}
	if ref.Host != "" && ref.Host != r.Host {
		return routepath.Root
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
