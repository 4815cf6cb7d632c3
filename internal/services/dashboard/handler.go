package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/menu"
	apperrors "github.com/louisbranch/adpulse/internal/platform/errors"
	"github.com/louisbranch/adpulse/internal/platform/httpx"
	"github.com/louisbranch/adpulse/internal/platform/id"
	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
	"github.com/louisbranch/adpulse/internal/services/dashboard/static"
	"github.com/louisbranch/adpulse/internal/services/dashboard/storage"
	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
	"github.com/louisbranch/adpulse/internal/services/dashboard/transport/httpmux"
	"github.com/louisbranch/adpulse/internal/services/shared/htmx"
	"github.com/louisbranch/adpulse/internal/table"
	"github.com/louisbranch/adpulse/internal/theme"
)

const (
	// sessionCookieName stores the browser session id keying table state
	// and the theme preference.
	sessionCookieName = "adpulse-session"
	// sessionCookieMaxAge keeps the theme preference across browser restarts.
	sessionCookieMaxAge = 365 * 24 * time.Hour
	// staticCacheControl lets browsers reuse embedded assets for a day.
	staticCacheControl = "public, max-age=86400"
)

// HandlerConfig holds the collaborators of the dashboard handler.
type HandlerConfig struct {
	// Store persists theme preferences. Optional; without it the theme
	// follows the system preference for the lifetime of the page.
	Store storage.PreferenceStore
	// Live supplies the KPI cards. Defaults to a fresh feed.
	Live *campaign.Live
	// PageSize is the initial page size of new table sessions.
	PageSize int
	// RefreshInterval is the metrics polling period.
	RefreshInterval time.Duration
	// Clock schedules View menu hover delays. Defaults to the system clock.
	Clock menu.Clock
	Logger *slog.Logger
}

// Handler routes dashboard requests.
type Handler struct {
	store    storage.PreferenceStore
	live     *campaign.Live
	sessions *tableSessions
	refresh  time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler builds the HTTP handler for the dashboard.
func NewHandler(cfg HandlerConfig) http.Handler {
	return newHandler(cfg).routes()
}

func newHandler(cfg HandlerConfig) *Handler {
	if cfg.Live == nil {
		cfg.Live = campaign.NewLive()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = table.DefaultPageSize
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = campaign.DefaultRefreshInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = menu.SystemClock
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{
		store:    cfg.Store,
		live:     cfg.Live,
		sessions: newTableSessions(cfg.PageSize, cfg.Clock),
		refresh:  cfg.RefreshInterval,
		logger:   cfg.Logger,
		now:      time.Now,
	}
}

// routes wires the HTTP routes for the dashboard handler.
func (h *Handler) routes() http.Handler {
	app := http.NewServeMux()
	get := func(path string, fn http.HandlerFunc) {
		app.Handle(path, httpx.Chain(fn, httpx.RequireMethod(http.MethodGet)))
	}
	post := func(path string, fn http.HandlerFunc) {
		app.Handle(path, httpx.Chain(fn, httpx.RequireMethod(http.MethodPost)))
	}

	get(routepath.Root+"{$}", h.handleDashboard)
	get(routepath.DashboardMetrics, h.handleMetrics)
	get(routepath.Audiences, h.handleAudiences)

	get(routepath.Campaigns, h.handleCampaignsPage)
	get(routepath.CampaignsTable, h.handleCampaignsTable)
	get(routepath.CampaignsExport, h.handleCampaignsExport)
	post(routepath.TableSearch, h.handleTableSearch)
	post(routepath.TableFilter, h.handleTableFilter)
	post(routepath.TableSort, h.handleTableSort)
	post(routepath.TablePage, h.handleTablePage)
	post(routepath.TablePageSize, h.handleTablePageSize)
	post(routepath.TableSelect, h.handleTableSelect)
	post(routepath.TableSelectPage, h.handleTableSelectPage)
	post(routepath.TableColumns, h.handleTableColumns)
	post(routepath.TableMenu, h.handleTableMenu)

	get(routepath.Settings, h.handleSettings)
	post(routepath.SettingsTheme, h.handleSettingsTheme)
	post(routepath.ThemeToggle, h.handleThemeToggle)

	app.HandleFunc(routepath.Command, h.handleCommand)
	app.HandleFunc(routepath.Root, h.handleNotFound)

	root := http.NewServeMux()
	httpmux.MountStatic(root, static.FS, withCacheControl(staticCacheControl))
	httpmux.MountHealth(root)
	httpmux.MountApp(root, httpx.Chain(app, h.withSession, h.withTheme))

	return httpx.Chain(root,
		httpx.RecoverPanic(h.logger),
		httpx.RequestID(),
		httpx.AccessLog(h.logger),
		httpx.Trace(""),
	)
}

func withCacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}

type sessionIDKey struct{}

// withSession ensures every browser carries a session id cookie.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookieName); err == nil && id.Valid(cookie.Value) {
			sessionID = cookie.Value
		}
		if sessionID == "" {
			generated, err := id.NewID()
			if err != nil {
				httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "generate session id", err))
				return
			}
			sessionID = generated
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge / time.Second),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey{}).(string)
	return sessionID
}

// withTheme resolves the appearance once per request and attaches it to
// the request context.
func (h *Handler) withTheme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tc, err := theme.Init(ctx, h.store, sessionIDFromContext(ctx), theme.SystemPreference(r))
		if err != nil {
			h.logger.WarnContext(ctx, "resolve theme", slog.Any("error", err))
		}
		w.Header().Set("Accept-CH", theme.SystemHeader)
		w.Header().Add("Vary", theme.SystemHeader)
		next.ServeHTTP(w, r.WithContext(theme.WithContext(ctx, tc)))
	})
}

// renderPage writes body inside the layout, or alone for HTMX swaps.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page templates.PageContext, body templ.Component) {
	err := htmx.Render(w, r, htmx.Page{
		Fragment: body,
		Full:     templates.Layout(page, body),
		Title:    templates.ComposePageTitle(page.Title),
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render page", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

// renderFragment writes a standalone component.
func (h *Handler) renderFragment(w http.ResponseWriter, r *http.Request, c templ.Component) {
	if err := htmx.Fragment(w, r, c); err != nil {
		h.logger.ErrorContext(r.Context(), "render fragment", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(w, r, apperrors.New(apperrors.CodeNotFound, "no route for "+r.URL.Path))
}
