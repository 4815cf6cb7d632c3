// Package theme carries the light/dark appearance preference.
//
// A Context is resolved once per request at the application root (persisted
// preference, else the client's system preference, else light) and handed
// down through context.Context to everything that styles output. There is
// no package-level theme state.
package theme

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Theme is an appearance mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default applies when neither a stored nor a system preference exists.
const Default = Light

// SystemHeader is the client hint carrying the OS color scheme.
const SystemHeader = "Sec-CH-Prefers-Color-Scheme"

// ErrNotFound reports that no preference is stored for a subject.
var ErrNotFound = errors.New("theme preference not found")

// Parse reads "light" or "dark", case-insensitively.
func Parse(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// BodyClass is the class applied to the document body.
func (t Theme) BodyClass() string {
	if t == Dark {
		return "dark-mode"
	}
	return "light-mode"
}

// Store persists preferences per subject.
type Store interface {
	// GetTheme returns ErrNotFound when nothing is stored.
	GetTheme(ctx context.Context, subject string) (Theme, error)
	PutTheme(ctx context.Context, subject string, t Theme) error
}

// Source records where a resolved theme came from.
type Source string

const (
	SourceStored  Source = "stored"
	SourceSystem  Source = "system"
	SourceDefault Source = "default"
)

// Context is the resolved appearance for one subject.
type Context struct {
	subject string
	current Theme
	source  Source
	store   Store
}

// Init resolves the theme for subject. system is the client's preference,
// empty when unknown. A store read failure falls back to the system or
// default theme and is returned alongside the usable Context.
func Init(ctx context.Context, store Store, subject string, system Theme) (*Context, error) {
	tc := &Context{subject: subject, store: store}
	var readErr error
	if store != nil && subject != "" {
		stored, err := store.GetTheme(ctx, subject)
		switch {
		case err == nil:
			if t, ok := Parse(string(stored)); ok {
				tc.current, tc.source = t, SourceStored
				return tc, nil
			}
		case !errors.Is(err, ErrNotFound):
			readErr = fmt.Errorf("get theme: %w", err)
		}
	}
	if t, ok := Parse(string(system)); ok {
		tc.current, tc.source = t, SourceSystem
		return tc, readErr
	}
	tc.current, tc.source = Default, SourceDefault
	return tc, readErr
}

// Current returns the active theme.
func (c *Context) Current() Theme {
	if c == nil {
		return Default
	}
	return c.current
}

// Source reports where the active theme came from.
func (c *Context) Source() Source {
	if c == nil {
		return SourceDefault
	}
	return c.source
}

// Set changes and persists the theme.
func (c *Context) Set(ctx context.Context, t Theme) error {
	if _, ok := Parse(string(t)); !ok {
		return fmt.Errorf("invalid theme %q", t)
	}
	if c.store != nil && c.subject != "" {
		if err := c.store.PutTheme(ctx, c.subject, t); err != nil {
			return fmt.Errorf("put theme: %w", err)
		}
	}
	c.current, c.source = t, SourceStored
	return nil
}

// Toggle flips and persists the theme, returning the new value.
func (c *Context) Toggle(ctx context.Context) (Theme, error) {
	next := c.Current().Toggle()
	if err := c.Set(ctx, next); err != nil {
		return c.Current(), err
	}
	return next, nil
}

// SystemPreference reads the client color scheme hint.
func SystemPreference(r *http.Request) Theme {
	if r == nil {
		return ""
	}
	t, _ := Parse(strings.Trim(r.Header.Get(SystemHeader), `"`))
	return t
}

type contextKey struct{}

// WithContext attaches tc to ctx.
func WithContext(ctx context.Context, tc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext returns the attached Context, or nil. A nil Context reports
// the default theme.
func FromContext(ctx context.Context) *Context {
	tc, _ := ctx.Value(contextKey{}).(*Context)
	return tc
}
