package dashboard

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/adpulse/internal/campaign"
	apperrors "github.com/louisbranch/adpulse/internal/platform/errors"
	"github.com/louisbranch/adpulse/internal/platform/httpx"
	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
	"github.com/louisbranch/adpulse/internal/services/shared/htmx"
	"github.com/louisbranch/adpulse/internal/table"
	"github.com/louisbranch/adpulse/internal/table/csvexport"
	"github.com/louisbranch/adpulse/internal/table/tablequery"
)

// exportFilePrefix names downloaded CSV files.
const exportFilePrefix = "campaign-data"

// ignoredParamsNotice is shown when part of a shared link could not be
// applied.
const ignoredParamsNotice = "Some link parameters could not be applied and were ignored."

func (h *Handler) handleCampaignsPage(w http.ResponseWriter, r *http.Request) {
	session, notice := h.seededSession(r)
	view := campaignTableView(session, notice)
	h.sessions.release(session)
	h.renderPage(w, r, templates.PageContext{Title: "Campaigns", Active: templates.NavCampaigns}, templates.CampaignsPage(view))
}

func (h *Handler) handleCampaignsTable(w http.ResponseWriter, r *http.Request) {
	session, notice := h.seededSession(r)
	view := campaignTableView(session, notice)
	h.sessions.release(session)
	h.renderFragment(w, r, templates.CampaignTable(view))
}

// seededSession acquires the caller's table session and applies any table
// query parameters. Without parameters the session keeps its state. The
// session is returned locked.
func (h *Handler) seededSession(r *http.Request) (*tableSession, string) {
	session, _ := h.sessions.acquire(sessionIDFromContext(r.Context()))
	query := r.URL.Query()
	if !hasTableParams(query) {
		return session, ""
	}
	if err := tablequery.Apply(session.engine, tablequery.FromValues(query)); err != nil {
		h.logger.WarnContext(r.Context(), "ignore table parameters",
			slog.String(tablequery.ParamFilter, query.Get(tablequery.ParamFilter)),
			slog.String(tablequery.ParamOrderBy, query.Get(tablequery.ParamOrderBy)),
			slog.Any("error", err),
		)
		return session, ignoredParamsNotice
	}
	return session, ""
}

func hasTableParams(values map[string][]string) bool {
	for _, key := range []string{
		tablequery.ParamQuery,
		tablequery.ParamFilter,
		tablequery.ParamOrderBy,
		tablequery.ParamPage,
		tablequery.ParamPageSize,
	} {
		if _, ok := values[key]; ok {
			return true
		}
	}
	return false
}

// mutateTable runs mutate against the caller's engine and answers with the
// re-rendered table. A session created by this request means the previous
// state expired, so the browser is asked to reload instead.
func (h *Handler) mutateTable(w http.ResponseWriter, r *http.Request, mutate func(*tableSession) error) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeInvalidArgument, "parse table form", err))
		return
	}
	session, created := h.sessions.acquire(sessionIDFromContext(r.Context()))
	if created {
		h.sessions.release(session)
		htmx.Refresh(w)
		httpx.WriteError(w, r, apperrors.New(apperrors.CodeSessionExpired, "table session expired"))
		return
	}
	if err := mutate(session); err != nil {
		h.sessions.release(session)
		httpx.WriteError(w, r, err)
		return
	}
	view := campaignTableView(session, "")
	h.sessions.release(session)

	htmx.PushURL(w, view.PushURL)
	h.renderFragment(w, r, templates.CampaignTable(view))
}

func (h *Handler) handleTableSearch(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		s.engine.SetGlobalFilter(strings.TrimSpace(r.FormValue("q")))
		return nil
	})
}

func (h *Handler) handleTableFilter(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		col, err := dataColumn(s.engine, r.FormValue("column"))
		if err != nil {
			return err
		}
		s.engine.SetColumnFilter(col.Key, strings.TrimSpace(r.FormValue("value")))
		return nil
	})
}

func (h *Handler) handleTableSort(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		col, err := dataColumn(s.engine, r.FormValue("column"))
		if err != nil {
			return err
		}
		additive, _ := strconv.ParseBool(r.FormValue("additive"))
		s.engine.ToggleSort(col.Key, additive)
		return nil
	})
}

func (h *Handler) handleTablePage(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		switch action := r.FormValue("action"); action {
		case "prev":
			s.engine.PreviousPage()
		case "next":
			s.engine.NextPage()
		case "first":
			s.engine.SetPageIndex(0)
		case "last":
			s.engine.SetPageIndex(s.engine.PageCount() - 1)
		case "":
			page, err := strconv.Atoi(r.FormValue("page"))
			if err != nil {
				return invalidArgument("page", err)
			}
			s.engine.SetPageIndex(page - 1)
		default:
			return invalidArgument("action", nil)
		}
		return nil
	})
}

func (h *Handler) handleTablePageSize(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		size, err := strconv.Atoi(r.FormValue("size"))
		if err != nil || size <= 0 {
			return invalidArgument("size", err)
		}
		s.engine.SetPageSize(min(size, tablequery.MaxPageSize))
		return nil
	})
}

func (h *Handler) handleTableSelect(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		selected, err := strconv.ParseBool(r.FormValue("selected"))
		if err != nil {
			return invalidArgument("selected", err)
		}
		s.engine.ToggleRowSelected(r.FormValue("id"), selected)
		return nil
	})
}

func (h *Handler) handleTableSelectPage(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		selected, err := strconv.ParseBool(r.FormValue("selected"))
		if err != nil {
			return invalidArgument("selected", err)
		}
		s.engine.ToggleAllPageRowsSelected(selected)
		return nil
	})
}

func (h *Handler) handleTableColumns(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		col, err := dataColumn(s.engine, r.FormValue("column"))
		if err != nil {
			return err
		}
		if !col.Hideable() {
			return unknownColumn(col.Key)
		}
		visible, err := strconv.ParseBool(r.FormValue("visible"))
		if err != nil {
			return invalidArgument("visible", err)
		}
		s.engine.ToggleColumnVisibility(col.Key, visible)
		return nil
	})
}

func (h *Handler) handleTableMenu(w http.ResponseWriter, r *http.Request) {
	h.mutateTable(w, r, func(s *tableSession) error {
		ev := menuEvent{
			Action: r.FormValue("action"),
			Path:   r.FormValue("path"),
			Key:    r.FormValue("key"),
		}
		if raw := r.FormValue("index"); raw != "" {
			index, err := strconv.Atoi(raw)
			if err != nil {
				return invalidArgument("index", err)
			}
			ev.Index = index
		}
		return s.viewMenu.apply(ev)
	})
}

// handleCampaignsExport downloads the selected rows, or every filtered row
// when nothing is selected, as CSV.
func (h *Handler) handleCampaignsExport(w http.ResponseWriter, r *http.Request) {
	session, _ := h.seededSession(r)
	if !session.engine.CanExport() {
		h.sessions.release(session)
		httpx.WriteError(w, r, apperrors.New(apperrors.CodeNotFound, "export is disabled"))
		return
	}
	rows := session.engine.ExportRows()
	columns := session.engine.VisibleColumns()
	h.sessions.release(session)

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, rows, columns); err != nil {
		httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeExportFailed, "encode campaigns", err))
		return
	}
	filename := csvexport.Filename(exportFilePrefix, h.now())
	w.Header().Set("Content-Type", csvexport.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.WarnContext(r.Context(), "write export", slog.Any("error", err))
	}
}

// dataColumn resolves key to a non-synthetic column.
func dataColumn(e *table.Engine[campaign.Record], key string) (table.Column[campaign.Record], error) {
	col, ok := e.Column(key)
	if !ok || col.Synthetic() {
		return table.Column[campaign.Record]{}, unknownColumn(key)
	}
	return col, nil
}

func unknownColumn(key string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidColumn, "unknown column "+strconv.Quote(key), map[string]string{"Column": key})
}

func invalidArgument(field string, cause error) error {
	err := apperrors.WithMetadata(apperrors.CodeInvalidArgument, "invalid "+field, map[string]string{"Field": field})
	err.Cause = cause
	return err
}
