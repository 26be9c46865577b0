// Package driver provides the Driver aggregate: a registered person with a
// licence type and an availability flag.
//
// Drivers are created by explicit registration with a caller supplied,
// immutable identity. The only state change in scope is Occupy, performed by
// the assignment engine when the driver is matched to a route; drivers are
// never deleted and never become available again.
package driver
