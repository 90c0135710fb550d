// Package testutil carries small helpers shared by tests across packages.
package testutil

import "testing"

// Given, When, and Then name subtests after the scenario under test so table
// walks over the reconciliation and classification logic read as behavior
// descriptions, without pulling in a BDD framework.
var (
	Given = step("Given ")
	When  = step("When ")
	Then  = step("Then ")
)

func step(prefix string) func(t *testing.T, desc string, fn func(t *testing.T)) {
	return func(t *testing.T, desc string, fn func(t *testing.T)) {
		t.Helper()
		t.Run(prefix+desc, fn)
	}
}
