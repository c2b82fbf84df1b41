package core

import (
	"context"
	"testing"
)

func seedAuditEntries(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewService(store, nil, func() string { return "Dana Whitfield" })

	if _, err := svc.CreateProduct(ctx, Product{Name: "Tumbler"}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := svc.CreateCustomer(ctx, Customer{ContactName: "Jane Doe"}); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if err := svc.RecordEvent(ctx, ActionExport, ModuleBackup, "Exported full backup"); err != nil {
		t.Fatalf("record event: %v", err)
	}
	return store
}

func TestQueryAuditFiltersByAction(t *testing.T) {
	store := seedAuditEntries(t)
	entries := store.QueryAudit(AuditQuery{Action: ActionExport})
	if len(entries) != 1 || entries[0].Module != ModuleBackup {
		t.Fatalf("action filter: %+v", entries)
	}
}

func TestQueryAuditFiltersByModule(t *testing.T) {
	store := seedAuditEntries(t)
	entries := store.QueryAudit(AuditQuery{Module: ModuleProducts})
	if len(entries) != 1 || entries[0].Action != ActionCreate {
		t.Fatalf("module filter: %+v", entries)
	}
}

func TestQueryAuditSearchIsCaseInsensitive(t *testing.T) {
	store := seedAuditEntries(t)
	entries := store.QueryAudit(AuditQuery{Search: "jane doe"})
	if len(entries) != 1 || entries[0].Module != ModuleCustomers {
		t.Fatalf("search: %+v", entries)
	}
}

func TestQueryAuditCombinesFiltersWithAnd(t *testing.T) {
	store := seedAuditEntries(t)
	entries := store.QueryAudit(AuditQuery{Search: "tumbler", Action: ActionExport})
	if len(entries) != 0 {
		t.Fatalf("conflicting filters matched: %+v", entries)
	}
}

func TestQueryAuditLimit(t *testing.T) {
	store := seedAuditEntries(t)
	entries := store.QueryAudit(AuditQuery{Limit: 2})
	if len(entries) != 2 {
		t.Fatalf("limit ignored: %d entries", len(entries))
	}
	// Newest first: the export event was recorded last.
	if entries[0].Action != ActionExport {
		t.Fatalf("head entry: %+v", entries[0])
	}
}

func TestAuditModulesNewestFirstDistinct(t *testing.T) {
	store := seedAuditEntries(t)
	modules := store.AuditModules()
	if len(modules) != 3 {
		t.Fatalf("modules: %v", modules)
	}
	if modules[0] != ModuleBackup {
		t.Fatalf("modules not newest-first: %v", modules)
	}
}
