package core

import (
	"regexp"
	"testing"
	"time"

	"supplycore/pkg/domain"
)

func TestYearBasedIDFormat(t *testing.T) {
	now := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^(PROD|CUST|SHP|JOB|SMP|USR)-2024-\d{4}$`)
	for _, kind := range []domain.EntityType{
		domain.EntityProduct, domain.EntityCustomer, domain.EntityShipment,
		domain.EntityJob, domain.EntitySample, domain.EntityUser,
	} {
		id := newIDAt(kind, now)
		if !pattern.MatchString(id) {
			t.Errorf("%s id %q does not match year-based format", kind, id)
		}
	}
}

func TestTimestampBasedIDFormat(t *testing.T) {
	now := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^(FAC|LOG)-\d{13}-\d{3}$`)
	for _, kind := range []domain.EntityType{domain.EntityFactory, domain.EntityAuditLog} {
		id := newIDAt(kind, now)
		if !pattern.MatchString(id) {
			t.Errorf("%s id %q does not match timestamp-based format", kind, id)
		}
	}
}

func TestAuditIDFormat(t *testing.T) {
	now := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	id := newAuditID(now)
	if !regexp.MustCompile(`^\d{13}-\d{3}$`).MatchString(id) {
		t.Fatalf("audit id %q does not match epoch-ms format", id)
	}
}

func TestUnknownKindGetsGenericPrefix(t *testing.T) {
	id := NewID(domain.EntityType("mystery"))
	if !regexp.MustCompile(`^REC-\d{4}-\d{4}$`).MatchString(id) {
		t.Fatalf("unknown kind id %q", id)
	}
}
