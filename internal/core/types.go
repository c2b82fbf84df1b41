package core

import "supplycore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Product            = domain.Product
	Customer           = domain.Customer
	Shipment           = domain.Shipment
	Factory            = domain.Factory
	Job                = domain.Job
	SampleRequest      = domain.SampleRequest
	User               = domain.User
	AuditLogEntry      = domain.AuditLogEntry
	AuditAction        = domain.AuditAction
	Change             = domain.Change
	Violation          = domain.Violation
	Result             = domain.Result
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
)

const (
	EntityProduct  = domain.EntityProduct
	EntityCustomer = domain.EntityCustomer
	EntityShipment = domain.EntityShipment
	EntityFactory  = domain.EntityFactory
	EntityJob      = domain.EntityJob
	EntitySample   = domain.EntitySample
	EntityUser     = domain.EntityUser
	EntityAuditLog = domain.EntityAuditLog
)

const (
	ActionLogin  = domain.AuditActionLogin
	ActionLogout = domain.AuditActionLogout
	ActionCreate = domain.AuditActionCreate
	ActionUpdate = domain.AuditActionUpdate
	ActionDelete = domain.AuditActionDelete
	ActionExport = domain.AuditActionExport
	ActionImport = domain.AuditActionImport
	ActionReset  = domain.AuditActionReset
)
