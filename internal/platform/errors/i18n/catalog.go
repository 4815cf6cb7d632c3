// Package i18n renders user-facing messages for error codes.
package i18n

import (
	"bytes"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

var supported = []language.Tag{language.AmericanEnglish}

var matcher = language.NewMatcher(supported)

var defaultMessages = map[Code]string{
	"UNKNOWN":             "Something went wrong.",
	"INVALID_FILTER":      "The filter {{.Filter}} could not be applied.",
	"INVALID_ORDER_BY":    "Campaigns cannot be sorted by {{.OrderBy}}.",
	"INVALID_THEME":       "Unknown theme {{.Theme}}.",
	"INVALID_COLUMN":      "Unknown column {{.Column}}.",
	"INVALID_ARGUMENT":    "Invalid value for {{.Field}}.",
	"METHOD_NOT_ALLOWED":  "This action is not available.",
	"NOT_FOUND":           "Page not found.",
	"SESSION_EXPIRED":     "Your table session expired. Reload the page to continue.",
	"EXPORT_FAILED":       "The campaign export failed.",
	"STORAGE_UNAVAILABLE": "Settings storage is unavailable.",
}

// catalogs is indexed like supported.
var catalogs = []*Catalog{NewCatalog(language.AmericanEnglish, defaultMessages)}

// Catalog maps error codes to message templates for one locale.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// NewCatalog builds a catalog for tag from code templates.
func NewCatalog(tag language.Tag, messages map[Code]string) *Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(tag))
	for code, tmpl := range messages {
		// Templates are stored raw; a literal % would otherwise be read as a verb.
		_ = builder.SetString(tag, code, escapePercent(tmpl))
	}
	return &Catalog{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

// GetCatalog returns the catalog best matching locale. Unknown locales fall
// back to en-US.
func GetCatalog(locale string) *Catalog {
	_, idx, _ := matcher.Match(language.Make(locale))
	return catalogs[idx]
}

// Locale returns the BCP 47 tag of this catalog.
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// Format renders the message for code with metadata. Unknown codes render
// as the code itself and broken templates render unexecuted.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl := c.printer.Sprintf(code)
	if metadata == nil {
		metadata = map[string]string{}
	}
	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

func escapePercent(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		if r == '%' {
			buf.WriteString("%%")
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String()
}
