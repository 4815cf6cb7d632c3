package dashboard

import (
	"net/http"

	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
)

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboardView(h.live, h.refresh)
	h.renderPage(w, r, templates.PageContext{Title: "Dashboard", Active: templates.NavDashboard}, templates.DashboardPage(view))
}

// handleMetrics serves the polled KPI strip.
func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	h.renderFragment(w, r, templates.MetricsPanel(metricsView(h.live, h.refresh)))
}

func (h *Handler) handleAudiences(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, templates.PageContext{Title: "Audiences", Active: templates.NavAudiences}, templates.AudiencesPage(audiencesView()))
}
