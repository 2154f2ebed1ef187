// Package product provides the Product aggregate and the error kinds of the
// inventory ledger.
//
// The stock counter carried by Product is the one hot shared value in the
// system. Its non-negativity invariant is enforced by the storage adapter's
// conditional update, not by application-level read-modify-write; this package
// defines the contract and failure vocabulary (ErrInvalidQuantity,
// ErrInsufficientStock) that the ledger operations speak.
package product
