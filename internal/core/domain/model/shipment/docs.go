// Package shipment provides the Shipment aggregate, the status state machine,
// and the append-only StatusUpdate history entries.
//
// The package includes:
//   - Shipment: the aggregate root holding assignment, quantity, and the
//     denormalized current status
//   - Status: the NEW/ASSIGNED/IN_TRANSIT/DELIVERED state machine with its
//     transition table
//   - StatusUpdate: an immutable history entry reported by a driver
//   - Assignment: the (driver, product, quantity) triple the reservation
//     delta engine compares across writes
//
// The denormalized current status is a derived cache over the StatusUpdate
// history: it may only be written through Shipment.SyncStatus, driven by the
// recompute-latest logic in the application layer. History rows are the
// source of truth, which is what makes deleting an erroneous latest update
// roll the visible status back to the prior entry.
package shipment
