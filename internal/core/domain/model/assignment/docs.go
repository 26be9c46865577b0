// Package assignment provides the Assignment record that links one driver to
// one route, and the RouteAssigned event raised when such a link is created.
//
// Assignments are append only history: they are created by the assignment
// engine together with the driver and route changes and are never updated in
// the current scope, so CompletedAt stays nil.
package assignment
