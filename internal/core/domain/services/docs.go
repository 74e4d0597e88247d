// Package services provides domain services that work across the driver and
// order aggregates of the delay pipeline.
//
// The package includes:
//   - ReassignmentEngine: picks a replacement driver for a delayed order and
//     enforces the reassignment ceiling, cancelling the order once it is hit
//   - FallbackRiskHeuristic: the local risk estimate used when the remote
//     scorer cannot be reached
//
// Both services are pure: they mutate only the aggregates handed to them and
// never touch storage or the network.
package services
