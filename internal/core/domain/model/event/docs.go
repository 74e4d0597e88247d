// Package event models what the delay pipeline records about each admitted
// delay event: the action taken, the reassignment outcome, where the risk
// score came from, and the immutable history Record.
package event
