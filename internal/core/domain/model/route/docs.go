// Package route provides the Route aggregate and its status state machine.
//
// A route is submitted with a start place, an end place, a distance and an
// estimated travel time. It is persisted Unassigned and, if a driver is
// available, assigned exactly once by the assignment engine.
package route
