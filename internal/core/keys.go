package core

import "supplycore/pkg/domain"

// Namespace prefixes every persisted key so several consoles can share one
// key-value medium.
const Namespace = "supplycore"

// Persisted keys. Entity collections use underscore suffixes; preference
// keys use dashes, matching the external representation consumers read.
const (
	KeyProducts  = Namespace + "_products"
	KeyCustomers = Namespace + "_customers"
	KeyShipments = Namespace + "_shipments"
	KeyFactories = Namespace + "_factories"
	KeyJobs      = Namespace + "_jobs"
	KeySamples   = Namespace + "_samples"
	KeyUsers     = Namespace + "_users"
	KeyAuditLogs = Namespace + "_audit_logs"

	KeySessionUser = Namespace + "_user_data"
	KeyLanguage    = Namespace + "-language"
	KeyTheme       = Namespace + "-theme"
	KeyStartPage   = Namespace + "-start-page"
	KeyUIPrefs     = Namespace + "-ui-prefs"
)

// CollectionKeys lists the entity-collection keys in their canonical order.
// This is also the exact top-level key set of a backup document.
func CollectionKeys() []string {
	return []string{
		KeyProducts, KeyCustomers, KeyShipments, KeyFactories,
		KeyJobs, KeySamples, KeyUsers, KeyAuditLogs,
	}
}

// keyForEntity maps an entity kind to its collection key.
func keyForEntity(kind domain.EntityType) string {
	switch kind {
	case domain.EntityProduct:
		return KeyProducts
	case domain.EntityCustomer:
		return KeyCustomers
	case domain.EntityShipment:
		return KeyShipments
	case domain.EntityFactory:
		return KeyFactories
	case domain.EntityJob:
		return KeyJobs
	case domain.EntitySample:
		return KeySamples
	case domain.EntityUser:
		return KeyUsers
	case domain.EntityAuditLog:
		return KeyAuditLogs
	}
	return ""
}

// SurvivesLogout reports whether a persisted key is preserved by the
// logout-triggered selective clear. Exactly theme, start page and language
// survive; everything else under the namespace is deleted.
func SurvivesLogout(key string) bool {
	switch key {
	case KeyTheme, KeyStartPage, KeyLanguage:
		return true
	}
	return false
}

// Theme values persisted under KeyTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// StartPage is the closed set of initial views a user may land on.
type StartPage string

// Recognised start pages.
const (
	StartPageDashboard StartPage = "dashboard"
	StartPageProducts  StartPage = "products"
	StartPageJobs      StartPage = "jobs"
	StartPageShipments StartPage = "shipments"
	StartPageCustomers StartPage = "customers"
)

// Normalize maps unrecognised persisted values onto the dashboard.
func (p StartPage) Normalize() StartPage {
	switch p {
	case StartPageDashboard, StartPageProducts, StartPageJobs, StartPageShipments, StartPageCustomers:
		return p
	default:
		return StartPageDashboard
	}
}
