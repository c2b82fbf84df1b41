package core

import (
	"fmt"
	"math/rand/v2"
	"time"

	"supplycore/pkg/domain"
)

// idPrefixes maps entity kinds to their human-readable id prefixes.
var idPrefixes = map[domain.EntityType]string{
	domain.EntityProduct:  "PROD",
	domain.EntityCustomer: "CUST",
	domain.EntityShipment: "SHP",
	domain.EntityFactory:  "FAC",
	domain.EntityJob:      "JOB",
	domain.EntitySample:   "SMP",
	domain.EntityUser:     "USR",
	domain.EntityAuditLog: "LOG",
}

// NewID produces a human-readable, collision-resistant identifier for the
// given entity kind. Most kinds use `<PREFIX>-<year>-<4 digits>`; factories
// and audit entries use `<PREFIX>-<epoch-ms>-<3 digits>` so bulk inserts in
// the same year stay visually distinct. Identifiers are not security tokens,
// so math/rand is sufficient.
func NewID(kind domain.EntityType) string {
	return newIDAt(kind, time.Now())
}

func newIDAt(kind domain.EntityType, now time.Time) string {
	prefix, ok := idPrefixes[kind]
	if !ok {
		prefix = "REC"
	}
	switch kind {
	case domain.EntityFactory, domain.EntityAuditLog:
		return fmt.Sprintf("%s-%d-%03d", prefix, now.UnixMilli(), rand.IntN(1000))
	default:
		return fmt.Sprintf("%s-%d-%04d", prefix, now.Year(), rand.IntN(10000))
	}
}

// newAuditID builds the id for an audit entry: timestamp plus random suffix.
func newAuditID(now time.Time) string {
	return fmt.Sprintf("%d-%03d", now.UnixMilli(), rand.IntN(1000))
}
