package core

import (
	"strings"
)

// AuditQuery filters the audit trail. Zero values mean "no filter"; all
// filters combine with AND. Results are always newest-first, matching the
// stored order.
type AuditQuery struct {
	// Search matches case-insensitively against user, module and details.
	Search string
	// Action restricts to one audit action when non-empty.
	Action AuditAction
	// Module restricts to one module label when non-empty.
	Module string
	// Limit caps the result count; zero means unlimited.
	Limit int
}

func (q AuditQuery) matches(e AuditLogEntry) bool {
	if q.Action != "" && e.Action != q.Action {
		return false
	}
	if q.Module != "" && e.Module != q.Module {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(e.User), needle) &&
			!strings.Contains(strings.ToLower(e.Module), needle) &&
			!strings.Contains(strings.ToLower(e.Details), needle) {
			return false
		}
	}
	return true
}

// QueryAudit returns the matching audit entries, newest-first.
func (s *Store) QueryAudit(q AuditQuery) []AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AuditLogEntry
	for _, e := range s.state.auditLog {
		if !q.matches(e) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

// AuditModules returns the distinct module labels present in the log, in
// first-seen (newest-first) order. Drives the module filter dropdown.
func (s *Store) AuditModules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.state.auditLog {
		if _, ok := seen[e.Module]; ok {
			continue
		}
		seen[e.Module] = struct{}{}
		out = append(out, e.Module)
	}
	return out
}
