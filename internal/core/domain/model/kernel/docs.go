// Package kernel holds the value objects shared by the driver, route and
// assignment aggregates: Place (a named location), Distance and Minutes.
// Constructors validate their input, so a value obtained from NewPlace,
// NewDistance or NewMinutes is always usable.
package kernel
