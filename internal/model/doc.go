// Package model defines shared data types used across coinfeed.
//
// Conventions:
//   - Upstream JSON is kept untyped (map[string]any) and numbers decode as
//     json.Number so nothing is lost in transit
//   - Empty values (zero-length list, empty map) mean "no usable data"
//   - IDs: uuid.UUID for recorded snapshots
package model
