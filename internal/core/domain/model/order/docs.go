// Package order provides the Order aggregate and its lifecycle status.
//
// The package includes:
//   - Order: the aggregate root holding the assigned-driver reference and the
//     reassignment counter
//   - Status: a state machine over ACTIVE, DELAYED and CANCELLED
//
// Key business rules:
//   - Delay events move ACTIVE or DELAYED orders to DELAYED; ACTIVE is never re-entered
//   - CANCELLED is terminal: the assigned-driver reference is frozen
//   - The reassignment counter never exceeds the ceiling passed to Reassign
//
// The assigned driver is a weak reference by identifier; the order does not own
// the driver and does not check that it exists.
package order
