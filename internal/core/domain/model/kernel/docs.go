// Package kernel provides core domain primitives shared across the RouteX model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated latitude/longitude pair reported by driver devices
//
// These primitives enforce domain invariants at construction time. They are
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
