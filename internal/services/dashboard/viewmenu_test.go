package dashboard

import (
	"errors"
	"testing"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/menu"
	apperrors "github.com/louisbranch/adpulse/internal/platform/errors"
)

func TestViewMenuItemsFollowEngine(t *testing.T) {
	engine := campaign.NewEngine(campaign.Records(), 10)
	v := newViewMenu(engine, &manualClock{})

	items := v.root.View().Items
	if len(items) != 11 {
		t.Fatalf("expected 11 root items, got %d", len(items))
	}
	if items[0].Kind != menu.KindLabel || items[8].Kind != menu.KindSubmenu || items[10].ID != "reset" {
		t.Fatalf("unexpected layout %+v", items)
	}
	for _, item := range items[1:7] {
		if item.Kind != menu.KindCheckbox || !item.Checked {
			t.Fatalf("expected checked column item, got %+v", item)
		}
	}
	sizes := v.sizes.View().Items
	if len(sizes) != len(pageSizes) || !sizes[1].Checked || sizes[0].Checked {
		t.Fatalf("expected 10 rows checked, got %+v", sizes)
	}

	engine.ToggleColumnVisibility(campaign.ColumnBudget, false)
	engine.SetPageSize(50)
	v.sync()
	items = v.root.View().Items
	if items[5].ID != "column:"+campaign.ColumnBudget || items[5].Checked {
		t.Fatalf("expected budget unchecked, got %+v", items[5])
	}
	if !v.sizes.View().Items[3].Checked {
		t.Fatal("expected 50 rows checked")
	}
}

func TestViewMenuApplyKeyboard(t *testing.T) {
	engine := campaign.NewEngine(campaign.Records(), 10)
	v := newViewMenu(engine, &manualClock{})

	if err := v.apply(menuEvent{Action: menuActionToggle}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	view := v.view()
	if !view.Open || view.ID != "view-menu" {
		t.Fatalf("expected open view menu, got %+v", view)
	}

	// First focusable item is the name column; Enter hides it.
	if err := v.apply(menuEvent{Action: menuActionKey, Key: "Enter"}); err != nil {
		t.Fatalf("key: %v", err)
	}
	if engine.IsColumnVisible(campaign.ColumnName) {
		t.Fatal("expected name column hidden")
	}
	if !v.root.IsOpen() {
		t.Fatal("expected checkbox to keep menu open")
	}

	if err := v.apply(menuEvent{Action: menuActionOutside}); err != nil {
		t.Fatalf("outside: %v", err)
	}
	if v.root.IsOpen() {
		t.Fatal("expected outside click to close")
	}
}

func TestViewMenuApplyRejectsBadInput(t *testing.T) {
	v := newViewMenu(campaign.NewEngine(campaign.Records(), 10), &manualClock{})

	for _, ev := range []menuEvent{
		{Action: "spin"},
		{Action: menuActionKey, Key: ""},
		{Action: menuActionActivate, Path: "x"},
		{Action: menuActionActivate, Path: "1"},
		{Action: menuActionHover, Path: "99"},
	} {
		err := v.apply(ev)
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidArgument {
			t.Fatalf("expected invalid argument for %+v, got %v", ev, err)
		}
	}
}

func TestViewMenuSubmenuHoverDelay(t *testing.T) {
	clock := &manualClock{}
	engine := campaign.NewEngine(campaign.Records(), 10)
	v := newViewMenu(engine, clock)

	_ = v.apply(menuEvent{Action: menuActionToggle})
	_ = v.apply(menuEvent{Action: menuActionHover, Index: 8})
	if view := v.view(); !view.Pending || view.Items[8].Submenu != nil && view.Items[8].Submenu.Open {
		t.Fatalf("expected pending expansion, got %+v", view)
	}

	clock.fire()
	view := v.view()
	if view.Pending || view.Items[8].Submenu == nil || !view.Items[8].Submenu.Open {
		t.Fatalf("expected expanded submenu, got %+v", view)
	}
	if view.Items[8].Submenu.Path != "8" {
		t.Fatalf("expected submenu path 8, got %q", view.Items[8].Submenu.Path)
	}

	if err := v.apply(menuEvent{Action: menuActionActivate, Path: "8", Index: 0}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if got := engine.State().Pagination.PageSize; got != 5 {
		t.Fatalf("expected page size 5, got %d", got)
	}
	if v.root.IsOpen() {
		t.Fatal("expected menu closed after choosing a size")
	}
}
