// Package htmx renders pages so one handler can answer both full browser
// loads and HTMX partial swaps.
package htmx

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Request and response headers understood by HTMX.
const (
	RequestHeader   = "HX-Request"
	PushURLHeader   = "HX-Push-Url"
	RefreshHeader   = "HX-Refresh"
	RetargetHeader  = "HX-Retarget"
	mainOpenTag     = "<main"
	mainCloseTag    = "</main>"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Page describes one renderable page.
type Page struct {
	// Fragment is the main content alone, used for HTMX swaps.
	Fragment templ.Component
	// Full is the complete document. When only Full is set, HTMX swaps get
	// the contents of its <main> element.
	Full templ.Component
	// Title is the plain page title. HTMX swaps get it as a <title> element
	// so the browser tab follows navigation.
	Title string
	// Status defaults to 200.
	Status int
}

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// PushURL asks HTMX to record location in the browser history.
func PushURL(w http.ResponseWriter, location string) {
	if w == nil || location == "" {
		return
	}
	w.Header().Set(PushURLHeader, location)
}

// Refresh asks HTMX to reload the whole page.
func Refresh(w http.ResponseWriter) {
	if w == nil {
		return
	}
	w.Header().Set(RefreshHeader, "true")
}

// Render writes page for normal or HTMX requests. Rendering happens into a
// buffer first so a failing component yields a clean 500.
func Render(w http.ResponseWriter, r *http.Request, page Page) error {
	status := page.Status
	if status == 0 {
		status = http.StatusOK
	}
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}

	var body []byte
	if IsHTMXRequest(r) {
		content, err := renderFragment(ctx, page)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return err
		}
		body = addTitleIfMissing(content, TitleTag(page.Title))
	} else {
		full := page.Full
		if full == nil {
			full = page.Fragment
		}
		content, err := renderComponent(ctx, full)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return err
		}
		body = content
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

// Fragment writes a single component without page chrome, as table and
// palette endpoints do.
func Fragment(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	return Render(w, r, Page{Fragment: c, Full: c})
}

func renderFragment(ctx context.Context, page Page) ([]byte, error) {
	if page.Fragment != nil {
		return renderComponent(ctx, page.Fragment)
	}
	full, err := renderComponent(ctx, page.Full)
	if err != nil {
		return nil, err
	}
	if main, ok := extractMainContent(full); ok {
		return main, nil
	}
	return full, nil
}

func renderComponent(ctx context.Context, c templ.Component) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addTitleIfMissing(body []byte, title string) []byte {
	if title == "" || bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	return append([]byte(title), body...)
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte(mainOpenTag))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.IndexByte(body[start:], '>')
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.LastIndex(body[contentStart:], []byte(mainCloseTag))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
