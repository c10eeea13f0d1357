// Package characteristics provides constructors for the characteristic kinds
// of the catalog, with typed values and enumeration states.
//
// Read-only kinds take a model.ReadBinding so that a setter cannot be bound
// to them by mistake.
package characteristics
