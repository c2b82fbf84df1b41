package backup

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"supplycore/internal/core"
	"supplycore/internal/kv"
	"supplycore/internal/kv/memory"
	"supplycore/pkg/domain"
)

func newBackupFixture(t *testing.T) (*core.Store, *memory.Store) {
	t.Helper()
	medium := memory.New()
	store := core.NewStore(context.Background(), medium, nil)
	return store, medium
}

func TestExportCoversEveryCollectionKey(t *testing.T) {
	store, _ := newBackupFixture(t)
	doc, err := Export(store)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, key := range core.CollectionKeys() {
		if _, ok := doc[key]; !ok {
			t.Errorf("export missing key %q", key)
		}
	}
	if len(doc) != len(core.CollectionKeys()) {
		t.Fatalf("export has %d keys, want %d", len(doc), len(core.CollectionKeys()))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newBackupFixture(t)
	svc := core.NewService(store, nil, nil)
	created, err := svc.CreateProduct(ctx, domain.Product{Name: "Round Tripper"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	doc, err := Export(store)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := doc.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Import into a fresh medium, then hydrate a new store from it.
	target := memory.New()
	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Import(ctx, target, parsed); err != nil {
		t.Fatalf("import: %v", err)
	}
	restored := core.NewStore(ctx, target, nil)

	if _, ok := restored.ResolveProduct(created.ID); !ok {
		t.Fatal("created product lost across export/import")
	}
	if len(restored.AuditLog()) != len(store.AuditLog()) {
		t.Fatal("audit log not carried by backup")
	}
}

func TestPartialImportLeavesOtherKeysUntouched(t *testing.T) {
	ctx := context.Background()
	medium := memory.New()
	if err := kv.Save(ctx, medium, core.KeyCustomers, []domain.Customer{{
		Base:        domain.Base{ID: "CUST-KEEP"},
		CompanyName: "Keep Me",
	}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc, err := Parse([]byte(`{"` + core.KeyProducts + `": [{"id":"PROD-NEW","name":"Imported"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Import(ctx, medium, doc); err != nil {
		t.Fatalf("import: %v", err)
	}

	raw, ok, err := medium.Get(ctx, core.KeyCustomers)
	if err != nil || !ok {
		t.Fatalf("customers key cleared: ok=%v err=%v", ok, err)
	}
	var customers []domain.Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "CUST-KEEP" {
		t.Fatalf("customers overwritten: %+v", customers)
	}

	rawProducts, ok, _ := medium.Get(ctx, core.KeyProducts)
	if !ok || !strings.Contains(string(rawProducts), "PROD-NEW") {
		t.Fatalf("products not imported: %q", rawProducts)
	}
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestParseRejectsUnknownTopLevelKey(t *testing.T) {
	if _, err := Parse([]byte(`{"supplycore-theme": "dark"}`)); err == nil {
		t.Fatal("session key accepted in backup document")
	}
}

func TestParseRejectsWrongCollectionShape(t *testing.T) {
	_, err := Parse([]byte(`{"` + core.KeyProducts + `": {"id": "not-an-array"}}`))
	if err == nil {
		t.Fatal("object payload accepted where array expected")
	}
}
