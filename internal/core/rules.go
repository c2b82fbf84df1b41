package core

import (
	"context"
	"fmt"

	"supplycore/pkg/domain"
)

// NewDefaultRulesEngine wires the rules every store starts with. Reference
// checks only warn: deleting a factory is always allowed even while jobs
// still point at it, and the dangling ids are preserved as-is.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(skuCodeUniqueRule{})
	engine.Register(danglingReferenceRule{})
	engine.Register(shipmentLinkRule{})
	return engine
}

// skuCodeUniqueRule blocks a product write when two of its SKU variants
// share a code.
type skuCodeUniqueRule struct{}

func (skuCodeUniqueRule) Name() string { return "product.sku_code_unique" }

func (r skuCodeUniqueRule) Evaluate(_ context.Context, _ domain.RuleView, changes []Change) (Result, error) {
	var result Result
	for _, ch := range changes {
		if ch.Entity != EntityProduct || ch.Action == ActionDelete {
			continue
		}
		p, ok := ch.After.(Product)
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(p.SKUs))
		for _, sku := range p.SKUs {
			if _, dup := seen[sku.Code]; dup {
				result.Violations = append(result.Violations, Violation{
					Rule:     r.Name(),
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("duplicate SKU code %q", sku.Code),
					Entity:   EntityProduct,
					EntityID: p.ID,
				})
			}
			seen[sku.Code] = struct{}{}
		}
	}
	return result, nil
}

// danglingReferenceRule warns when a written record carries a soft reference
// whose target is absent. Warnings surface in the log; the write proceeds.
type danglingReferenceRule struct{}

func (danglingReferenceRule) Name() string { return "reference.dangling" }

func (r danglingReferenceRule) Evaluate(_ context.Context, view domain.RuleView, changes []Change) (Result, error) {
	var result Result
	warn := func(entity EntityType, id, field, target string) {
		result.Violations = append(result.Violations, Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%s reference %q has no target", field, target),
			Entity:   entity,
			EntityID: id,
		})
	}
	for _, ch := range changes {
		if ch.Action == ActionDelete {
			continue
		}
		switch ch.Entity {
		case EntityProduct:
			p, ok := ch.After.(Product)
			if !ok {
				continue
			}
			if p.PrimaryFactoryID != "" {
				if _, found := view.FindFactory(p.PrimaryFactoryID); !found {
					warn(EntityProduct, p.ID, "factory", p.PrimaryFactoryID)
				}
			}
		case EntityJob:
			j, ok := ch.After.(Job)
			if !ok {
				continue
			}
			if j.ProductRefID != "" {
				if _, found := view.FindProduct(j.ProductRefID); !found {
					warn(EntityJob, j.ID, "product", j.ProductRefID)
				}
			}
			if j.FactoryID != "" {
				if _, found := view.FindFactory(j.FactoryID); !found {
					warn(EntityJob, j.ID, "factory", j.FactoryID)
				}
			}
			if j.CustomerID != "" {
				if _, found := view.FindCustomer(j.CustomerID); !found {
					warn(EntityJob, j.ID, "customer", j.CustomerID)
				}
			}
		case EntityShipment:
			sh, ok := ch.After.(Shipment)
			if !ok {
				continue
			}
			if sh.JobID != "" {
				if _, found := view.FindJob(sh.JobID); !found {
					warn(EntityShipment, sh.ID, "job", sh.JobID)
				}
			}
			if sh.LinkedSampleID != "" {
				if _, found := view.FindSample(sh.LinkedSampleID); !found {
					warn(EntityShipment, sh.ID, "sample", sh.LinkedSampleID)
				}
			}
		case EntitySample:
			sr, ok := ch.After.(SampleRequest)
			if !ok {
				continue
			}
			if sr.ProductID != "" {
				if _, found := view.FindProduct(sr.ProductID); !found {
					warn(EntitySample, sr.ID, "product", sr.ProductID)
				}
			}
			if sr.FactoryID != "" {
				if _, found := view.FindFactory(sr.FactoryID); !found {
					warn(EntitySample, sr.ID, "factory", sr.FactoryID)
				}
			}
		}
	}
	return result, nil
}

// shipmentLinkRule warns when a shipment's link does not match its type:
// a job shipment should carry a job id, a sample shipment a sample id, and
// never both.
type shipmentLinkRule struct{}

func (shipmentLinkRule) Name() string { return "shipment.link_matches_type" }

func (r shipmentLinkRule) Evaluate(_ context.Context, _ domain.RuleView, changes []Change) (Result, error) {
	var result Result
	for _, ch := range changes {
		if ch.Entity != EntityShipment || ch.Action == ActionDelete {
			continue
		}
		sh, ok := ch.After.(Shipment)
		if !ok {
			continue
		}
		var msg string
		switch {
		case sh.JobID != "" && sh.LinkedSampleID != "":
			msg = "shipment links both a job and a sample"
		case sh.Type == domain.ShipmentTypeJob && sh.JobID == "":
			msg = "job shipment has no job id"
		case sh.Type == domain.ShipmentTypeSample && sh.LinkedSampleID == "":
			msg = "sample shipment has no sample id"
		}
		if msg != "" {
			result.Violations = append(result.Violations, Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityWarn,
				Message:  msg,
				Entity:   EntityShipment,
				EntityID: sh.ID,
			})
		}
	}
	return result, nil
}
