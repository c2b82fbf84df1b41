package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"supplycore/pkg/domain"
)

// Module labels as they appear in audit entries and exports.
const (
	ModuleProducts  = "Products"
	ModuleCustomers = "Customers"
	ModuleShipments = "Shipments"
	ModuleFactories = "Factories"
	ModuleJobs      = "Jobs"
	ModuleSamples   = "Samples"
	ModuleUsers     = "Users"
	ModuleSystem    = "System"
	ModuleBackup    = "Backup"
	ModuleAuditLog  = "Audit Log"
)

// ActorFunc names the user on whose behalf a mutation runs. An empty return
// is recorded as "System".
type ActorFunc func() string

// Service is the mutation facade: every write funnels through it so each
// call yields exactly one audit entry and one persistence step, with the
// entity write and its audit record committed together.
type Service struct {
	store  *Store
	logger *zap.Logger
	actor  ActorFunc
}

// NewService wraps a store. A nil actor records every mutation as "System".
func NewService(store *Store, logger *zap.Logger, actor ActorFunc) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if actor == nil {
		actor = func() string { return "" }
	}
	return &Service{store: store, logger: logger, actor: actor}
}

// Store exposes the underlying store for read paths.
func (s *Service) Store() *Store { return s.store }

func (s *Service) actorName() string {
	if name := s.actor(); name != "" {
		return name
	}
	return "System"
}

// audit builds the entry for one facade call. The id embeds the mutation
// timestamp so entries sort stably even within one millisecond.
func (s *Service) audit(m *Mutation, action AuditAction, module, details string) AuditLogEntry {
	return AuditLogEntry{
		ID:        newAuditID(m.Now()),
		Timestamp: m.Now(),
		User:      s.actorName(),
		Action:    action,
		Module:    module,
		Details:   details,
	}
}

// CreateProduct stores a new product and records the creation.
func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	var created Product
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateProduct(p, true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleProducts,
			fmt.Sprintf("Created product %q (%s)", created.DisplayName(), created.ID)))
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	s.logger.Info("product created", zap.String("id", created.ID))
	return created, nil
}

// UpdateProduct replaces an existing product wholesale. A miss is an error;
// updates never insert.
func (s *Service) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	var updated Product
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateProduct(p)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleProducts,
			fmt.Sprintf("Updated product %q (%s)", updated.DisplayName(), updated.ID)))
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a product without touching records that reference it.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteProduct(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleProducts,
			fmt.Sprintf("Deleted product %q (%s)", removed.DisplayName(), removed.ID)))
		return nil
	})
	return err
}

// CreateCustomer stores a new customer. A blank company name is defaulted to
// the contact name before the record is written.
func (s *Service) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	var created Customer
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateCustomer(c, true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleCustomers,
			fmt.Sprintf("Created customer %q (%s)", created.DisplayName(), created.ID)))
		return nil
	})
	if err != nil {
		return Customer{}, err
	}
	return created, nil
}

// UpdateCustomer replaces an existing customer wholesale.
func (s *Service) UpdateCustomer(ctx context.Context, c Customer) (Customer, error) {
	var updated Customer
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateCustomer(c)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleCustomers,
			fmt.Sprintf("Updated customer %q (%s)", updated.DisplayName(), updated.ID)))
		return nil
	})
	if err != nil {
		return Customer{}, err
	}
	return updated, nil
}

// DeleteCustomer removes a customer. Jobs keep their customer ids.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteCustomer(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleCustomers,
			fmt.Sprintf("Deleted customer %q (%s)", removed.DisplayName(), removed.ID)))
		return nil
	})
	return err
}

// normalizeShipment reconciles the type flag with whichever link is set and
// blanks the link that does not match, so a committed shipment carries at
// most one of jobID/linkedSampleID. A populated job id wins over the declared
// type; a sample link without a job id flips the type to sample.
func normalizeShipment(sh Shipment) Shipment {
	switch {
	case sh.JobID != "":
		sh.Type = domain.ShipmentTypeJob
	case sh.LinkedSampleID != "":
		sh.Type = domain.ShipmentTypeSample
	case sh.Type == "":
		sh.Type = domain.ShipmentTypeJob
	}
	switch sh.Type {
	case domain.ShipmentTypeJob:
		sh.LinkedSampleID = ""
	case domain.ShipmentTypeSample:
		sh.JobID = ""
	}
	return sh
}

// CreateShipment stores a new shipment after reconciling its type with its
// link fields.
func (s *Service) CreateShipment(ctx context.Context, sh Shipment) (Shipment, error) {
	var created Shipment
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateShipment(normalizeShipment(sh), true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleShipments,
			fmt.Sprintf("Created shipment %q (%s)", created.DisplayName(), created.ID)))
		return nil
	})
	if err != nil {
		return Shipment{}, err
	}
	return created, nil
}

// UpdateShipment replaces an existing shipment wholesale.
func (s *Service) UpdateShipment(ctx context.Context, sh Shipment) (Shipment, error) {
	var updated Shipment
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateShipment(normalizeShipment(sh))
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleShipments,
			fmt.Sprintf("Updated shipment %q (%s)", updated.DisplayName(), updated.ID)))
		return nil
	})
	if err != nil {
		return Shipment{}, err
	}
	return updated, nil
}

// DeleteShipment removes a shipment.
func (s *Service) DeleteShipment(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteShipment(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleShipments,
			fmt.Sprintf("Deleted shipment %q (%s)", removed.DisplayName(), removed.ID)))
		return nil
	})
	return err
}

// CreateFactory stores a new factory.
func (s *Service) CreateFactory(ctx context.Context, f Factory) (Factory, error) {
	var created Factory
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateFactory(f, true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleFactories,
			fmt.Sprintf("Created factory %q (%s)", created.DisplayName(), created.ID)))
		return nil
	})
	if err != nil {
		return Factory{}, err
	}
	return created, nil
}

// UpdateFactory replaces an existing factory wholesale.
func (s *Service) UpdateFactory(ctx context.Context, f Factory) (Factory, error) {
	var updated Factory
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateFactory(f)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleFactories,
			fmt.Sprintf("Updated factory %q (%s)", updated.DisplayName(), updated.ID)))
		return nil
	})
	if err != nil {
		return Factory{}, err
	}
	return updated, nil
}

// DeleteFactory removes a factory. Products and jobs keep their factory ids;
// lookups on those ids simply stop resolving.
func (s *Service) DeleteFactory(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteFactory(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleFactories,
			fmt.Sprintf("Deleted factory %q (%s)", removed.DisplayName(), removed.ID)))
		return nil
	})
	return err
}

// CreateJob stores a new production order. A negative quantity or completion
// percentage is clamped to zero; completion is capped at 100.
func (s *Service) CreateJob(ctx context.Context, j Job) (Job, error) {
	var created Job
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateJob(clampJob(j), true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleJobs,
			fmt.Sprintf("Created job %q (%s)", created.DisplayName(), created.ID)))
		return nil
	})
	if err != nil {
		return Job{}, err
	}
	return created, nil
}

// UpdateJob replaces an existing job wholesale.
func (s *Service) UpdateJob(ctx context.Context, j Job) (Job, error) {
	var updated Job
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateJob(clampJob(j))
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleJobs,
			fmt.Sprintf("Updated job %q (%s)", updated.DisplayName(), updated.ID)))
		return nil
	})
	if err != nil {
		return Job{}, err
	}
	return updated, nil
}

// DeleteJob removes a job. Shipments keep their job ids.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteJob(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleJobs,
			fmt.Sprintf("Deleted job %q (%s)", removed.DisplayName(), removed.ID)))
		return nil
	})
	return err
}

func clampJob(j Job) Job {
	if j.Quantity < 0 {
		j.Quantity = 0
	}
	if j.CompletionPercent < 0 {
		j.CompletionPercent = 0
	}
	if j.CompletionPercent > 100 {
		j.CompletionPercent = 100
	}
	return j
}

// CreateSample stores a new sample request.
func (s *Service) CreateSample(ctx context.Context, sr SampleRequest) (SampleRequest, error) {
	var created SampleRequest
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateSample(sr, true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleSamples,
			fmt.Sprintf("Created sample request %s", created.ID)))
		return nil
	})
	if err != nil {
		return SampleRequest{}, err
	}
	return created, nil
}

// UpdateSample replaces an existing sample request wholesale.
func (s *Service) UpdateSample(ctx context.Context, sr SampleRequest) (SampleRequest, error) {
	var updated SampleRequest
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateSample(sr)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleSamples,
			fmt.Sprintf("Updated sample request %s", updated.ID)))
		return nil
	})
	if err != nil {
		return SampleRequest{}, err
	}
	return updated, nil
}

// DeleteSample removes a sample request.
func (s *Service) DeleteSample(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteSample(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleSamples,
			fmt.Sprintf("Deleted sample request %s", removed.ID)))
		return nil
	})
	return err
}

// CreateUser stores a new console user.
func (s *Service) CreateUser(ctx context.Context, u User) (User, error) {
	var created User
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		created, err = m.CreateUser(u, true)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionCreate, ModuleUsers,
			fmt.Sprintf("Created user %q (%s)", created.DisplayName(), created.ID)))
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return created, nil
}

// UpdateUser replaces an existing user wholesale. Callers must carry the
// stored password hash forward when the password is unchanged.
func (s *Service) UpdateUser(ctx context.Context, u User) (User, error) {
	var updated User
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		var err error
		updated, err = m.UpdateUser(u)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionUpdate, ModuleUsers,
			fmt.Sprintf("Updated user %q (%s)", updated.DisplayName(), updated.ID)))
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return updated, nil
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		removed, err := m.DeleteUser(id)
		if err != nil {
			return err
		}
		m.AppendAudit(s.audit(m, ActionDelete, ModuleUsers,
			fmt.Sprintf("Deleted user %q (%s)", removed.DisplayName(), removed.ID)))
		return nil
	})
	return err
}

// RecordEvent appends a bare audit entry with no entity write. Session
// login/logout and export/import flows use it.
func (s *Service) RecordEvent(ctx context.Context, action AuditAction, module, details string) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		m.AppendAudit(s.audit(m, action, module, details))
		return nil
	})
	return err
}

// ResetToSeed discards every collection, including the audit log, and
// restores the seed dataset. The reset itself is the first entry in the
// fresh log.
func (s *Service) ResetToSeed(ctx context.Context) error {
	_, err := s.store.Mutate(ctx, func(m *Mutation) error {
		m.ResetState(SeedState())
		m.AppendAudit(s.audit(m, ActionReset, ModuleSystem, "Restored seed dataset"))
		return nil
	})
	return err
}
