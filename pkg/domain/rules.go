package domain

import "context"

// RuleView provides read-only access to the entity collections for rule
// evaluation. Lookups never imply referential integrity: a Find miss is a
// normal outcome, not an error.
type RuleView interface {
	ListProducts() []Product
	ListCustomers() []Customer
	ListShipments() []Shipment
	ListFactories() []Factory
	ListJobs() []Job
	ListSamples() []SampleRequest
	ListUsers() []User
	FindProduct(id string) (Product, bool)
	FindCustomer(id string) (Customer, bool)
	FindShipment(id string) (Shipment, bool)
	FindFactory(id string) (Factory, bool)
	FindJob(id string) (Job, bool)
	FindSample(id string) (SampleRequest, bool)
	FindUser(id string) (User, bool)
}

// Rule defines an evaluation executed against a pending mutation.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the registered rules in registration order.
func (e *RulesEngine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
