// Package kernel provides shared value objects used across the dispatch
// domain model.
//
// The package includes:
//   - UUID: validated identifier wrapping github.com/google/uuid
//   - Money: fixed-point monetary amount with two decimal places
//   - GeoPoint: validated WGS84 coordinate pair
//
// All value objects are immutable, created through validating constructors,
// and carry a constructor guard so zero values fail Validate. This keeps
// invalid identifiers, amounts, and coordinates out of the aggregates that
// embed them.
package kernel
