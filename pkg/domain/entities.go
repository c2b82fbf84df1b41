// Package domain defines the persistent entities, value types, and rule
// evaluation primitives shared by the supplycore store.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityProduct identifies a product record.
	EntityProduct EntityType = "product"
	// EntityCustomer identifies a customer record.
	EntityCustomer EntityType = "customer"
	// EntityShipment identifies a shipment record.
	EntityShipment EntityType = "shipment"
	// EntityFactory identifies a factory record.
	EntityFactory EntityType = "factory"
	// EntityJob identifies a production order record.
	EntityJob EntityType = "job"
	// EntitySample identifies a sample request record.
	EntitySample EntityType = "sample"
	// EntityUser identifies a console user record.
	EntityUser EntityType = "user"
	// EntityAuditLog identifies an audit trail entry.
	EntityAuditLog EntityType = "audit_log"
)

// FactoryStatus enumerates the vetting pipeline states for a factory.
type FactoryStatus string

// Canonical factory statuses. Persisted data from older shapes may carry
// values outside this set; read sites must treat those as FactoryStatusUnknown.
const (
	FactoryStatusPending FactoryStatus = "Pending"
	FactoryStatusVetting FactoryStatus = "Vetting"
	FactoryStatusActive  FactoryStatus = "Active"
	// FactoryStatusUnknown is the fallback for unrecognised legacy values.
	FactoryStatusUnknown FactoryStatus = "Unknown"
)

// Normalize maps unrecognised persisted values onto FactoryStatusUnknown.
func (s FactoryStatus) Normalize() FactoryStatus {
	switch s {
	case FactoryStatusPending, FactoryStatusVetting, FactoryStatusActive:
		return s
	default:
		return FactoryStatusUnknown
	}
}

// JobPriority ranks production orders for scheduling.
type JobPriority string

// Canonical job priorities.
const (
	JobPriorityLow    JobPriority = "Low"
	JobPriorityMedium JobPriority = "Medium"
	JobPriorityHigh   JobPriority = "High"
	JobPriorityUrgent JobPriority = "Urgent"
)

// Normalize maps unrecognised persisted values onto JobPriorityMedium.
func (p JobPriority) Normalize() JobPriority {
	switch p {
	case JobPriorityLow, JobPriorityMedium, JobPriorityHigh, JobPriorityUrgent:
		return p
	default:
		return JobPriorityMedium
	}
}

// ShipmentType distinguishes which soft link a shipment carries.
type ShipmentType string

// A job shipment links a Job; a sample shipment links a SampleRequest.
const (
	ShipmentTypeJob    ShipmentType = "job"
	ShipmentTypeSample ShipmentType = "sample"
)

// UserRole is the closed set of console roles.
type UserRole string

// Canonical user roles.
const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleEditor     UserRole = "editor"
	RoleViewer     UserRole = "viewer"
	RoleCustomer   UserRole = "customer"
)

// Normalize maps unrecognised persisted values onto RoleViewer, the least
// privileged role.
func (r UserRole) Normalize() UserRole {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer, RoleCustomer:
		return r
	default:
		return RoleViewer
	}
}

// AuditAction is the closed set of actions recorded in the audit trail.
type AuditAction string

// Audit actions. EXPORT/IMPORT/RESET cover the backup surface.
const (
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionExport AuditAction = "EXPORT"
	AuditActionImport AuditAction = "IMPORT"
	AuditActionReset  AuditAction = "RESET"
)

// AuditActions lists every recognised action, in display order.
func AuditActions() []AuditAction {
	return []AuditAction{
		AuditActionLogin, AuditActionLogout,
		AuditActionCreate, AuditActionUpdate, AuditActionDelete,
		AuditActionExport, AuditActionImport, AuditActionReset,
	}
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks the mutation.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows the mutation.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CostBreakdown itemises the landed cost of one product unit.
type CostBreakdown struct {
	Materials  float64 `json:"materials"`
	Labor      float64 `json:"labor"`
	Packaging  float64 `json:"packaging"`
	Overhead   float64 `json:"overhead"`
	Logistics  float64 `json:"logistics"`
	Inspection float64 `json:"inspection"`
}

// Total sums every cost component.
func (c CostBreakdown) Total() float64 {
	return c.Materials + c.Labor + c.Packaging + c.Overhead + c.Logistics + c.Inspection
}

// Dimensions captures packed product dimensions.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit,omitempty"`
}

// SKUVariant is one sellable variant of a product. Codes must be unique
// within the owning product.
type SKUVariant struct {
	Code           string             `json:"code"`
	Size           string             `json:"size,omitempty"`
	RegionalPrices map[string]float64 `json:"regional_prices,omitempty"`
}

// Competitor is a tracked competing product.
type Competitor struct {
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// Product is a sellable item with its cost structure and SKU variants.
// PrimaryFactoryID is a soft reference; it may point at a factory that no
// longer exists.
type Product struct {
	Base
	Name             string        `json:"name"`
	Brand            string        `json:"brand,omitempty"`
	Category         string        `json:"category,omitempty"`
	Status           string        `json:"status,omitempty"`
	Costs            CostBreakdown `json:"costs"`
	Dimensions       Dimensions    `json:"dimensions"`
	SKUs             []SKUVariant  `json:"skus,omitempty"`
	PrimaryFactoryID string        `json:"primary_factory_id,omitempty"`
	Competitors      []Competitor  `json:"competitors,omitempty"`
}

// ContactInfo is a named point of contact.
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Factory is a manufacturing partner.
type Factory struct {
	Base
	Name           string        `json:"name"`
	Country        string        `json:"country,omitempty"`
	Location       string        `json:"location,omitempty"`
	Contact        ContactInfo   `json:"contact"`
	Capabilities   []string      `json:"capabilities,omitempty"`
	MOQ            int           `json:"moq,omitempty"`
	Capacity       int           `json:"capacity,omitempty"`
	Certifications []string      `json:"certifications,omitempty"`
	Rating         float64       `json:"rating"`
	Status         FactoryStatus `json:"status"`
}

// Job is a purchase/production order. ProductRefID, FactoryID and CustomerID
// are soft references; a consumer that cannot resolve one renders
// "unassigned" instead of failing.
type Job struct {
	Base
	JobName            string      `json:"job_name"`
	PONumber           string      `json:"po_number,omitempty"`
	ProductRefID       string      `json:"product_ref_id,omitempty"`
	FactoryID          string      `json:"factory_id,omitempty"`
	CustomerID         string      `json:"customer_id,omitempty"`
	Quantity           int         `json:"quantity"`
	Status             string      `json:"status,omitempty"`
	ProductionStage    string      `json:"production_stage,omitempty"`
	Priority           JobPriority `json:"priority"`
	StartDate          string      `json:"start_date,omitempty"`
	TargetDeliveryDate string      `json:"target_delivery_date,omitempty"`
	Incoterms          string      `json:"incoterms,omitempty"`
	ShippingMethod     string      `json:"shipping_method,omitempty"`
	Destination        string      `json:"destination,omitempty"`
	PaymentTerms       string      `json:"payment_terms,omitempty"`
	CompletionPercent  int         `json:"completion_percent"`
}

// Customer is a buying account.
type Customer struct {
	Base
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Region      string  `json:"region,omitempty"`
	Country     string  `json:"country,omitempty"`
	Tier        string  `json:"tier,omitempty"`
	Status      string  `json:"status,omitempty"`
	TotalSpend  float64 `json:"total_spend"`
	TotalOrders int     `json:"total_orders"`
}

// Shipment tracks goods in transit. Exactly one of JobID / LinkedSampleID is
// populated depending on Type; both are soft references.
type Shipment struct {
	Base
	TrackingNumber string       `json:"tracking_number,omitempty"`
	Carrier        string       `json:"carrier,omitempty"`
	Method         string       `json:"method,omitempty"`
	Status         string       `json:"status,omitempty"`
	Origin         string       `json:"origin,omitempty"`
	Destination    string       `json:"destination,omitempty"`
	ETD            string       `json:"etd,omitempty"`
	ETA            string       `json:"eta,omitempty"`
	Type           ShipmentType `json:"shipment_type"`
	JobID          string       `json:"job_id,omitempty"`
	LinkedSampleID string       `json:"linked_sample_id,omitempty"`
}

// SampleRequest tracks a product sample ordered from a factory.
type SampleRequest struct {
	Base
	Type         string  `json:"type,omitempty"`
	ProductID    string  `json:"product_id,omitempty"`
	FactoryID    string  `json:"factory_id,omitempty"`
	Status       string  `json:"status,omitempty"`
	RequestDate  string  `json:"request_date,omitempty"`
	SampleCost   float64 `json:"sample_cost"`
	ShippingCost float64 `json:"shipping_cost"`
}

// User is a console account. Passwords are stored as bcrypt hashes.
type User struct {
	Base
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	LastActive   time.Time `json:"last_active"`
}

// AuditLogEntry is one immutable record of a mutation. Entries are never
// edited or reordered after being recorded; the log is kept newest-first.
type AuditLogEntry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	Module    string      `json:"module"`
	Details   string      `json:"details"`
}

// DisplayName returns the label used in audit detail strings.
func (p Product) DisplayName() string { return p.Name }

// DisplayName returns the label used in audit detail strings.
func (f Factory) DisplayName() string { return f.Name }

// DisplayName returns the job name, falling back to the PO number.
func (j Job) DisplayName() string {
	if j.JobName != "" {
		return j.JobName
	}
	return j.PONumber
}

// DisplayName returns the company name, falling back to the contact name.
func (c Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.ContactName
}

// DisplayName returns the tracking number, falling back to the id.
func (s Shipment) DisplayName() string {
	if s.TrackingNumber != "" {
		return s.TrackingNumber
	}
	return s.ID
}

// DisplayName returns the sample request id.
func (s SampleRequest) DisplayName() string { return s.ID }

// DisplayName returns the user's name.
func (u User) DisplayName() string { return u.Name }

// Change describes a mutation applied to an entity during a facade call.
type Change struct {
	Entity EntityType
	Action AuditAction
	Before any
	After  any
}

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// Warnings returns the non-blocking violations.
func (r Result) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity != SeverityBlock {
			out = append(out, v)
		}
	}
	return out
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "mutation blocked by rules"
}
