// Package services provides domain services that coordinate the driver,
// route and assignment aggregates.
//
// The package includes:
//   - DriverSelector: picks one driver out of a locked candidate set
//   - RouteDispatcher: applies a driver to a route and records the assignment
//
// Both services are pure: they never touch storage. The assignment command
// handler loads and locks the aggregates, calls the services and persists the
// result in one transaction.
package services
