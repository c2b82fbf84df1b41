package core

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyCoreWiresStorageDrivers ensures the database-backed kv drivers are
// reachable only through this package's driver selection. Everything else
// must depend on the kv.Store interface.
func TestOnlyCoreWiresStorageDrivers(t *testing.T) {
	driverPrefixes := []string{
		"supplycore/internal/kv/sqlite",
		"supplycore/internal/kv/postgres",
	}
	allowed := "supplycore/internal/core"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "supplycore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	violations := make(map[string]struct{})
	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, allowed) {
			continue
		}
		if isDriverPath(pkg.PkgPath, driverPrefixes) {
			continue
		}
		for importPath := range pkg.Imports {
			if isDriverPath(importPath, driverPrefixes) {
				violations[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}

	if len(violations) > 0 {
		lines := make([]string, 0, len(violations))
		for v := range violations {
			lines = append(lines, v)
		}
		sort.Strings(lines)
		for _, v := range lines {
			t.Errorf("forbidden storage driver import: %s", v)
		}
	}
}

func isDriverPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
