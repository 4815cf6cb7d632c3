package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base.Locale() != "en-US" {
		t.Fatalf("expected en-US, got %s", base.Locale())
	}
	if GetCatalog("fr-CA") != base {
		t.Fatal("expected fallback to en-US catalog")
	}
}

func TestFormatDefaultMessages(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format("INVALID_COLUMN", map[string]string{"Column": "owner"})
	if got != "Unknown column owner." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog(language.AmericanEnglish, map[Code]string{
		"code": "hello {{.Name}}",
		"pct":  "100% done",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
	if got := cat.Format("pct", nil); got != "100% done" {
		t.Fatalf("expected literal percent, got %q", got)
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog(language.AmericanEnglish, map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}
