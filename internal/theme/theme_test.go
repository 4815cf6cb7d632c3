package theme

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
)

type memStore struct {
	values  map[string]Theme
	getErr  error
	putErr  error
	putCall int
}

func (s *memStore) GetTheme(_ context.Context, subject string) (Theme, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	t, ok := s.values[subject]
	if !ok {
		return "", ErrNotFound
	}
	return t, nil
}

func (s *memStore) PutTheme(_ context.Context, subject string, t Theme) error {
	s.putCall++
	if s.putErr != nil {
		return s.putErr
	}
	if s.values == nil {
		s.values = map[string]Theme{}
	}
	s.values[subject] = t
	return nil
}

func TestInitResolutionOrder(t *testing.T) {
	ctx := context.Background()
	store := &memStore{values: map[string]Theme{"s1": Dark}}

	tc, err := Init(ctx, store, "s1", Light)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if tc.Current() != Dark || tc.Source() != SourceStored {
		t.Fatalf("expected stored dark, got %s from %s", tc.Current(), tc.Source())
	}

	tc, _ = Init(ctx, store, "s2", Dark)
	if tc.Current() != Dark || tc.Source() != SourceSystem {
		t.Fatalf("expected system dark, got %s from %s", tc.Current(), tc.Source())
	}

	tc, _ = Init(ctx, store, "s2", "")
	if tc.Current() != Light || tc.Source() != SourceDefault {
		t.Fatalf("expected default light, got %s from %s", tc.Current(), tc.Source())
	}
}

func TestInitStoreFailureFallsBack(t *testing.T) {
	store := &memStore{getErr: errors.New("db locked")}
	tc, err := Init(context.Background(), store, "s1", Dark)
	if err == nil {
		t.Fatal("expected error")
	}
	if tc.Current() != Dark {
		t.Fatalf("expected system fallback, got %s", tc.Current())
	}
}

func TestTogglePersists(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	tc, _ := Init(ctx, store, "s1", "")

	next, err := tc.Toggle(ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next != Dark || store.values["s1"] != Dark {
		t.Fatalf("expected dark persisted, got %s / %s", next, store.values["s1"])
	}

	store.putErr = errors.New("read only")
	if _, err := tc.Toggle(ctx); err == nil {
		t.Fatal("expected persist error")
	}
	if tc.Current() != Dark {
		t.Fatalf("expected theme unchanged after failed toggle, got %s", tc.Current())
	}
}

func TestSetRejectsUnknownTheme(t *testing.T) {
	tc, _ := Init(context.Background(), nil, "", "")
	if err := tc.Set(context.Background(), "sepia"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseAndBodyClass(t *testing.T) {
	if got, ok := Parse(" DARK "); !ok || got != Dark {
		t.Fatalf("expected dark, got %q %v", got, ok)
	}
	if _, ok := Parse("blue"); ok {
		t.Fatal("expected unknown theme rejected")
	}
	if Dark.BodyClass() != "dark-mode" || Light.BodyClass() != "light-mode" {
		t.Fatal("unexpected body classes")
	}
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Fatal("unexpected toggle")
	}
}

func TestSystemPreference(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := SystemPreference(r); got != "" {
		t.Fatalf("expected unknown preference, got %q", got)
	}
	r.Header.Set(SystemHeader, `"dark"`)
	if got := SystemPreference(r); got != Dark {
		t.Fatalf("expected dark, got %q", got)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()).Current() != Default {
		t.Fatal("expected default theme without context")
	}
	tc, _ := Init(context.Background(), nil, "", Dark)
	ctx := WithContext(context.Background(), tc)
	if FromContext(ctx).Current() != Dark {
		t.Fatal("expected attached theme")
	}
}
