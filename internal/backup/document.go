// Package backup moves complete console state in and out of the durable
// medium: a JSON document for export/import, blob-stored archives, and
// audit trail exports in CSV and XLSX form.
package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"supplycore/internal/core"
	"supplycore/internal/kv"
	"supplycore/pkg/domain"
)

// Document is one full backup: a single JSON object whose top-level keys
// are exactly the entity-collection keys, each holding that collection's
// array. Session and preference keys are never part of a backup.
type Document map[string]json.RawMessage

// Export snapshots every collection from committed store state.
func Export(store *core.Store) (Document, error) {
	doc := make(Document, 8)
	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		doc[key] = raw
		return nil
	}
	steps := []struct {
		key string
		v   any
	}{
		{core.KeyProducts, store.Products()},
		{core.KeyCustomers, store.Customers()},
		{core.KeyShipments, store.Shipments()},
		{core.KeyFactories, store.Factories()},
		{core.KeyJobs, store.Jobs()},
		{core.KeySamples, store.Samples()},
		{core.KeyUsers, store.Users()},
		{core.KeyAuditLogs, store.AuditLog()},
	}
	for _, s := range steps {
		if err := put(s.key, s.v); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Marshal renders the document as the external backup JSON.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Parse decodes and validates a backup document. Unlike collection loads,
// a malformed backup is fatal for the import operation: the error surfaces
// and nothing is written. Each present collection must parse as its entity
// array; top-level keys outside the collection set are rejected.
func Parse(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("backup document: %w", err)
	}
	known := make(map[string]struct{})
	for _, key := range core.CollectionKeys() {
		known[key] = struct{}{}
	}
	for key, val := range doc {
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("backup document: unknown key %q", key)
		}
		if err := validateCollection(key, val); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func validateCollection(key string, raw json.RawMessage) error {
	var err error
	switch key {
	case core.KeyProducts:
		err = json.Unmarshal(raw, &[]domain.Product{})
	case core.KeyCustomers:
		err = json.Unmarshal(raw, &[]domain.Customer{})
	case core.KeyShipments:
		err = json.Unmarshal(raw, &[]domain.Shipment{})
	case core.KeyFactories:
		err = json.Unmarshal(raw, &[]domain.Factory{})
	case core.KeyJobs:
		err = json.Unmarshal(raw, &[]domain.Job{})
	case core.KeySamples:
		err = json.Unmarshal(raw, &[]domain.SampleRequest{})
	case core.KeyUsers:
		err = json.Unmarshal(raw, &[]domain.User{})
	case core.KeyAuditLogs:
		err = json.Unmarshal(raw, &[]domain.AuditLogEntry{})
	}
	if err != nil {
		return fmt.Errorf("backup document: %s: %w", key, err)
	}
	return nil
}

// Import writes each collection present in the document verbatim under its
// key. Absent keys are left untouched, not cleared. The store must be
// reloaded afterwards for the imported state to take effect.
func Import(ctx context.Context, medium kv.Store, doc Document) error {
	for _, key := range core.CollectionKeys() {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if err := medium.Set(ctx, key, raw); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}
