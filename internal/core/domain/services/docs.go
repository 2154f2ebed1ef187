// Package services provides domain services that orchestrate business rules
// spanning multiple aggregates of the shipment system.
//
// The package includes:
//   - ReservationPlanner: A domain service that derives the stock ledger
//     operations implied by a change to a shipment's assignment
//
// Domain services hold logic that does not naturally belong to a single
// aggregate root, following Domain-Driven Design principles.
package services
