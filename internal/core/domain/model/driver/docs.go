// Package driver provides the Driver entity and its availability status.
//
// A driver is identified by an immutable identifier, carries a display name and
// a free-text current location, and is either AVAILABLE or BUSY. Availability is
// changed only by order assignment and reassignment; nothing in the delay
// pipeline reads the location.
package driver
