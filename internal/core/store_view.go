package core

import "supplycore/pkg/domain"

// stateView adapts a state snapshot to domain.RuleView.
type stateView struct {
	state *state
}

func viewOf(st *state) stateView { return stateView{state: st} }

func (v stateView) ListProducts() []Product {
	return cloneSlice(v.state.products, cloneProduct)
}

func (v stateView) ListCustomers() []Customer {
	return cloneSlice(v.state.customers, cloneCustomer)
}

func (v stateView) ListShipments() []Shipment {
	return cloneSlice(v.state.shipments, cloneShipment)
}

func (v stateView) ListFactories() []Factory {
	return cloneSlice(v.state.factories, cloneFactory)
}

func (v stateView) ListJobs() []Job {
	return cloneSlice(v.state.jobs, cloneJob)
}

func (v stateView) ListSamples() []SampleRequest {
	return cloneSlice(v.state.samples, cloneSample)
}

func (v stateView) ListUsers() []User {
	return cloneSlice(v.state.users, cloneUser)
}

func (v stateView) FindProduct(id string) (Product, bool) {
	p, ok := findOrdered(v.state.products, productID, id)
	if !ok {
		return Product{}, false
	}
	return cloneProduct(p), true
}

func (v stateView) FindCustomer(id string) (Customer, bool) {
	return findOrdered(v.state.customers, customerID, id)
}

func (v stateView) FindShipment(id string) (Shipment, bool) {
	return findOrdered(v.state.shipments, shipmentID, id)
}

func (v stateView) FindFactory(id string) (Factory, bool) {
	f, ok := findOrdered(v.state.factories, factoryID, id)
	if !ok {
		return Factory{}, false
	}
	return cloneFactory(f), true
}

func (v stateView) FindJob(id string) (Job, bool) {
	return findOrdered(v.state.jobs, jobID, id)
}

func (v stateView) FindSample(id string) (SampleRequest, bool) {
	return findOrdered(v.state.samples, sampleID, id)
}

func (v stateView) FindUser(id string) (User, bool) {
	return findOrdered(v.state.users, userID, id)
}

var _ domain.RuleView = stateView{}
