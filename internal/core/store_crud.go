package core

import (
	"fmt"
)

// ErrNotFound is returned when an update or delete names an id absent from
// its collection. Updates never fall back to insert; the miss is reported
// and the collection is left untouched.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// CreateProduct inserts a new product, assigning an id when the draft has
// none. Prepend places it at the head of the collection for newest-first
// display.
func (m *Mutation) CreateProduct(p Product, prepend bool) (Product, error) {
	if p.ID == "" {
		p.ID = NewID(EntityProduct)
	}
	if _, exists := findOrdered(m.state.products, productID, p.ID); exists {
		return Product{}, fmt.Errorf("product %q already exists", p.ID)
	}
	p.CreatedAt = m.now
	p.UpdatedAt = m.now
	m.state.products = upsertOrdered(m.state.products, productID, cloneProduct(p), prepend)
	m.recordChange(Change{Entity: EntityProduct, Action: ActionCreate, After: cloneProduct(p)})
	return p, nil
}

// UpdateProduct replaces the stored record wholesale, preserving its
// position and creation time.
func (m *Mutation) UpdateProduct(p Product) (Product, error) {
	current, ok := findOrdered(m.state.products, productID, p.ID)
	if !ok {
		return Product{}, ErrNotFound{Entity: EntityProduct, ID: p.ID}
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = m.now
	m.state.products = upsertOrdered(m.state.products, productID, cloneProduct(p), false)
	m.recordChange(Change{Entity: EntityProduct, Action: ActionUpdate, Before: cloneProduct(current), After: cloneProduct(p)})
	return p, nil
}

// DeleteProduct removes a product by id. Records referencing it keep their
// now-dangling ids; nothing cascades.
func (m *Mutation) DeleteProduct(id string) (Product, error) {
	rest, removed, ok := removeOrdered(m.state.products, productID, id)
	if !ok {
		return Product{}, ErrNotFound{Entity: EntityProduct, ID: id}
	}
	m.state.products = rest
	m.recordChange(Change{Entity: EntityProduct, Action: ActionDelete, Before: cloneProduct(removed)})
	return removed, nil
}

// CreateCustomer inserts a new customer. A blank company name falls back to
// the contact name at creation time.
func (m *Mutation) CreateCustomer(c Customer, prepend bool) (Customer, error) {
	if c.ID == "" {
		c.ID = NewID(EntityCustomer)
	}
	if _, exists := findOrdered(m.state.customers, customerID, c.ID); exists {
		return Customer{}, fmt.Errorf("customer %q already exists", c.ID)
	}
	if c.CompanyName == "" {
		c.CompanyName = c.ContactName
	}
	c.CreatedAt = m.now
	c.UpdatedAt = m.now
	m.state.customers = upsertOrdered(m.state.customers, customerID, c, prepend)
	m.recordChange(Change{Entity: EntityCustomer, Action: ActionCreate, After: c})
	return c, nil
}

// UpdateCustomer replaces the stored record wholesale.
func (m *Mutation) UpdateCustomer(c Customer) (Customer, error) {
	current, ok := findOrdered(m.state.customers, customerID, c.ID)
	if !ok {
		return Customer{}, ErrNotFound{Entity: EntityCustomer, ID: c.ID}
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = m.now
	m.state.customers = upsertOrdered(m.state.customers, customerID, c, false)
	m.recordChange(Change{Entity: EntityCustomer, Action: ActionUpdate, Before: current, After: c})
	return c, nil
}

// DeleteCustomer removes a customer by id.
func (m *Mutation) DeleteCustomer(id string) (Customer, error) {
	rest, removed, ok := removeOrdered(m.state.customers, customerID, id)
	if !ok {
		return Customer{}, ErrNotFound{Entity: EntityCustomer, ID: id}
	}
	m.state.customers = rest
	m.recordChange(Change{Entity: EntityCustomer, Action: ActionDelete, Before: removed})
	return removed, nil
}

// CreateShipment inserts a new shipment. The facade is responsible for
// having reconciled Type against JobID/LinkedSampleID beforehand.
func (m *Mutation) CreateShipment(sh Shipment, prepend bool) (Shipment, error) {
	if sh.ID == "" {
		sh.ID = NewID(EntityShipment)
	}
	if _, exists := findOrdered(m.state.shipments, shipmentID, sh.ID); exists {
		return Shipment{}, fmt.Errorf("shipment %q already exists", sh.ID)
	}
	sh.CreatedAt = m.now
	sh.UpdatedAt = m.now
	m.state.shipments = upsertOrdered(m.state.shipments, shipmentID, sh, prepend)
	m.recordChange(Change{Entity: EntityShipment, Action: ActionCreate, After: sh})
	return sh, nil
}

// UpdateShipment replaces the stored record wholesale.
func (m *Mutation) UpdateShipment(sh Shipment) (Shipment, error) {
	current, ok := findOrdered(m.state.shipments, shipmentID, sh.ID)
	if !ok {
		return Shipment{}, ErrNotFound{Entity: EntityShipment, ID: sh.ID}
	}
	sh.CreatedAt = current.CreatedAt
	sh.UpdatedAt = m.now
	m.state.shipments = upsertOrdered(m.state.shipments, shipmentID, sh, false)
	m.recordChange(Change{Entity: EntityShipment, Action: ActionUpdate, Before: current, After: sh})
	return sh, nil
}

// DeleteShipment removes a shipment by id.
func (m *Mutation) DeleteShipment(id string) (Shipment, error) {
	rest, removed, ok := removeOrdered(m.state.shipments, shipmentID, id)
	if !ok {
		return Shipment{}, ErrNotFound{Entity: EntityShipment, ID: id}
	}
	m.state.shipments = rest
	m.recordChange(Change{Entity: EntityShipment, Action: ActionDelete, Before: removed})
	return removed, nil
}

// CreateFactory inserts a new factory.
func (m *Mutation) CreateFactory(f Factory, prepend bool) (Factory, error) {
	if f.ID == "" {
		f.ID = NewID(EntityFactory)
	}
	if _, exists := findOrdered(m.state.factories, factoryID, f.ID); exists {
		return Factory{}, fmt.Errorf("factory %q already exists", f.ID)
	}
	f.Status = f.Status.Normalize()
	f.CreatedAt = m.now
	f.UpdatedAt = m.now
	m.state.factories = upsertOrdered(m.state.factories, factoryID, cloneFactory(f), prepend)
	m.recordChange(Change{Entity: EntityFactory, Action: ActionCreate, After: cloneFactory(f)})
	return f, nil
}

// UpdateFactory replaces the stored record wholesale.
func (m *Mutation) UpdateFactory(f Factory) (Factory, error) {
	current, ok := findOrdered(m.state.factories, factoryID, f.ID)
	if !ok {
		return Factory{}, ErrNotFound{Entity: EntityFactory, ID: f.ID}
	}
	f.Status = f.Status.Normalize()
	f.CreatedAt = current.CreatedAt
	f.UpdatedAt = m.now
	m.state.factories = upsertOrdered(m.state.factories, factoryID, cloneFactory(f), false)
	m.recordChange(Change{Entity: EntityFactory, Action: ActionUpdate, Before: cloneFactory(current), After: cloneFactory(f)})
	return f, nil
}

// DeleteFactory removes a factory by id. Jobs and products pointing at it
// keep their dangling factory ids.
func (m *Mutation) DeleteFactory(id string) (Factory, error) {
	rest, removed, ok := removeOrdered(m.state.factories, factoryID, id)
	if !ok {
		return Factory{}, ErrNotFound{Entity: EntityFactory, ID: id}
	}
	m.state.factories = rest
	m.recordChange(Change{Entity: EntityFactory, Action: ActionDelete, Before: cloneFactory(removed)})
	return removed, nil
}

// CreateJob inserts a new production order.
func (m *Mutation) CreateJob(j Job, prepend bool) (Job, error) {
	if j.ID == "" {
		j.ID = NewID(EntityJob)
	}
	if _, exists := findOrdered(m.state.jobs, jobID, j.ID); exists {
		return Job{}, fmt.Errorf("job %q already exists", j.ID)
	}
	j.Priority = j.Priority.Normalize()
	j.CreatedAt = m.now
	j.UpdatedAt = m.now
	m.state.jobs = upsertOrdered(m.state.jobs, jobID, j, prepend)
	m.recordChange(Change{Entity: EntityJob, Action: ActionCreate, After: j})
	return j, nil
}

// UpdateJob replaces the stored record wholesale.
func (m *Mutation) UpdateJob(j Job) (Job, error) {
	current, ok := findOrdered(m.state.jobs, jobID, j.ID)
	if !ok {
		return Job{}, ErrNotFound{Entity: EntityJob, ID: j.ID}
	}
	j.Priority = j.Priority.Normalize()
	j.CreatedAt = current.CreatedAt
	j.UpdatedAt = m.now
	m.state.jobs = upsertOrdered(m.state.jobs, jobID, j, false)
	m.recordChange(Change{Entity: EntityJob, Action: ActionUpdate, Before: current, After: j})
	return j, nil
}

// DeleteJob removes a job by id.
func (m *Mutation) DeleteJob(id string) (Job, error) {
	rest, removed, ok := removeOrdered(m.state.jobs, jobID, id)
	if !ok {
		return Job{}, ErrNotFound{Entity: EntityJob, ID: id}
	}
	m.state.jobs = rest
	m.recordChange(Change{Entity: EntityJob, Action: ActionDelete, Before: removed})
	return removed, nil
}

// CreateSample inserts a new sample request.
func (m *Mutation) CreateSample(sr SampleRequest, prepend bool) (SampleRequest, error) {
	if sr.ID == "" {
		sr.ID = NewID(EntitySample)
	}
	if _, exists := findOrdered(m.state.samples, sampleID, sr.ID); exists {
		return SampleRequest{}, fmt.Errorf("sample request %q already exists", sr.ID)
	}
	sr.CreatedAt = m.now
	sr.UpdatedAt = m.now
	m.state.samples = upsertOrdered(m.state.samples, sampleID, sr, prepend)
	m.recordChange(Change{Entity: EntitySample, Action: ActionCreate, After: sr})
	return sr, nil
}

// UpdateSample replaces the stored record wholesale.
func (m *Mutation) UpdateSample(sr SampleRequest) (SampleRequest, error) {
	current, ok := findOrdered(m.state.samples, sampleID, sr.ID)
	if !ok {
		return SampleRequest{}, ErrNotFound{Entity: EntitySample, ID: sr.ID}
	}
	sr.CreatedAt = current.CreatedAt
	sr.UpdatedAt = m.now
	m.state.samples = upsertOrdered(m.state.samples, sampleID, sr, false)
	m.recordChange(Change{Entity: EntitySample, Action: ActionUpdate, Before: current, After: sr})
	return sr, nil
}

// DeleteSample removes a sample request by id.
func (m *Mutation) DeleteSample(id string) (SampleRequest, error) {
	rest, removed, ok := removeOrdered(m.state.samples, sampleID, id)
	if !ok {
		return SampleRequest{}, ErrNotFound{Entity: EntitySample, ID: id}
	}
	m.state.samples = rest
	m.recordChange(Change{Entity: EntitySample, Action: ActionDelete, Before: removed})
	return removed, nil
}

// CreateUser inserts a new console user.
func (m *Mutation) CreateUser(u User, prepend bool) (User, error) {
	if u.ID == "" {
		u.ID = NewID(EntityUser)
	}
	if _, exists := findOrdered(m.state.users, userID, u.ID); exists {
		return User{}, fmt.Errorf("user %q already exists", u.ID)
	}
	u.Role = u.Role.Normalize()
	u.CreatedAt = m.now
	u.UpdatedAt = m.now
	m.state.users = upsertOrdered(m.state.users, userID, u, prepend)
	m.recordChange(Change{Entity: EntityUser, Action: ActionCreate, After: u})
	return u, nil
}

// UpdateUser replaces the stored record wholesale.
func (m *Mutation) UpdateUser(u User) (User, error) {
	current, ok := findOrdered(m.state.users, userID, u.ID)
	if !ok {
		return User{}, ErrNotFound{Entity: EntityUser, ID: u.ID}
	}
	u.Role = u.Role.Normalize()
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = m.now
	m.state.users = upsertOrdered(m.state.users, userID, u, false)
	m.recordChange(Change{Entity: EntityUser, Action: ActionUpdate, Before: current, After: u})
	return u, nil
}

// DeleteUser removes a user by id.
func (m *Mutation) DeleteUser(id string) (User, error) {
	rest, removed, ok := removeOrdered(m.state.users, userID, id)
	if !ok {
		return User{}, ErrNotFound{Entity: EntityUser, ID: id}
	}
	m.state.users = rest
	m.recordChange(Change{Entity: EntityUser, Action: ActionDelete, Before: removed})
	return removed, nil
}

// AppendAudit prepends an entry to the audit log. The log is append-only in
// the sense that existing entries are never edited or removed; new entries
// always land at the head so the log reads newest-first.
func (m *Mutation) AppendAudit(entry AuditLogEntry) {
	m.state.auditLog = append([]AuditLogEntry{entry}, m.state.auditLog...)
	m.touch(KeyAuditLogs)
}

// ResetState replaces every collection, including the audit log, with the
// provided state. Used by the full-state reset and by backup import.
func (m *Mutation) ResetState(st state) {
	m.state = st.clone()
	for _, key := range CollectionKeys() {
		m.touch(key)
	}
}

// ---- committed-state read accessors ----

// Products returns the product collection in stored order.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.products, cloneProduct)
}

// Customers returns the customer collection in stored order.
func (s *Store) Customers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.customers, cloneCustomer)
}

// Shipments returns the shipment collection in stored order.
func (s *Store) Shipments() []Shipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.shipments, cloneShipment)
}

// Factories returns the factory collection in stored order.
func (s *Store) Factories() []Factory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.factories, cloneFactory)
}

// Jobs returns the job collection in stored order.
func (s *Store) Jobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.jobs, cloneJob)
}

// Samples returns the sample request collection in stored order.
func (s *Store) Samples() []SampleRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.samples, cloneSample)
}

// Users returns the user collection in stored order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.users, cloneUser)
}

// AuditLog returns the audit trail, newest-first.
func (s *Store) AuditLog() []AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AuditLogEntry(nil), s.state.auditLog...)
}

// ResolveProduct looks up a soft product reference. A miss means the
// consumer should render "unlinked", never fail.
func (s *Store) ResolveProduct(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := findOrdered(s.state.products, productID, id)
	if !ok {
		return Product{}, false
	}
	return cloneProduct(p), true
}

// ResolveCustomer looks up a soft customer reference.
func (s *Store) ResolveCustomer(id string) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findOrdered(s.state.customers, customerID, id)
}

// ResolveShipment looks up a shipment by id.
func (s *Store) ResolveShipment(id string) (Shipment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findOrdered(s.state.shipments, shipmentID, id)
}

// ResolveFactory looks up a soft factory reference.
func (s *Store) ResolveFactory(id string) (Factory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := findOrdered(s.state.factories, factoryID, id)
	if !ok {
		return Factory{}, false
	}
	return cloneFactory(f), true
}

// ResolveJob looks up a soft job reference.
func (s *Store) ResolveJob(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findOrdered(s.state.jobs, jobID, id)
}

// ResolveSample looks up a soft sample reference.
func (s *Store) ResolveSample(id string) (SampleRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findOrdered(s.state.samples, sampleID, id)
}

// ResolveUser looks up a user by id.
func (s *Store) ResolveUser(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findOrdered(s.state.users, userID, id)
}

// FindUserByEmail looks up a user by email, for login.
func (s *Store) FindUserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}
