package core

import (
	"context"
	"testing"

	"supplycore/pkg/domain"
)

func TestShipmentLinkRuleWarnsOnMismatch(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	res, err := store.Mutate(ctx, func(m *Mutation) error {
		_, err := m.CreateShipment(Shipment{
			Type:           domain.ShipmentTypeJob,
			JobID:          "JOB-2024-4001",
			LinkedSampleID: "SMP-2024-5001",
		}, false)
		return err
	})
	if err != nil {
		t.Fatalf("double link blocked: %v", err)
	}
	found := false
	for _, w := range res.Warnings() {
		if w.Rule == "shipment.link_matches_type" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no link warning in %+v", res.Violations)
	}
}

func TestShipmentLinkRuleAcceptsConsistentShipment(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	res, err := store.Mutate(ctx, func(m *Mutation) error {
		_, err := m.CreateShipment(Shipment{
			Type:  domain.ShipmentTypeJob,
			JobID: SeedState().jobs[0].ID,
		}, false)
		return err
	})
	if err != nil {
		t.Fatalf("consistent shipment rejected: %v", err)
	}
	for _, w := range res.Warnings() {
		if w.Rule == "shipment.link_matches_type" {
			t.Fatalf("spurious warning: %+v", w)
		}
	}
}

func TestDanglingReferenceRuleChecksAllSoftFields(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	res, err := store.Mutate(ctx, func(m *Mutation) error {
		_, err := m.CreateJob(Job{
			JobName:      "all dangling",
			ProductRefID: "PROD-GONE",
			FactoryID:    "FAC-GONE",
			CustomerID:   "CUST-GONE",
		}, false)
		return err
	})
	if err != nil {
		t.Fatalf("warn-only rule blocked: %v", err)
	}
	if got := len(res.Warnings()); got != 3 {
		t.Fatalf("got %d warnings, want 3: %+v", got, res.Violations)
	}
}

func TestSKURuleIgnoresDeletes(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	seedProduct := SeedState().products[0]

	// The seed product has SKUs; deleting it must not re-evaluate them.
	_, err := store.Mutate(ctx, func(m *Mutation) error {
		_, err := m.DeleteProduct(seedProduct.ID)
		return err
	})
	if err != nil {
		t.Fatalf("delete evaluated as write: %v", err)
	}
}
