package queries

import "time"

// DriverSummary is the short form of a driver embedded in other views.
type DriverSummary struct {
	ID   string
	Name string
}

// RouteView is a route row as shown by the schedule and the route list.
// AssignedDriverID is only filled by the route list.
type RouteView struct {
	ID               int64
	StartLocation    string
	EndLocation      string
	Distance         float64
	EstimatedTime    int
	Status           string
	AssignedDriverID *string
}

// HistoryEntry is one assignment of a driver together with its route.
type HistoryEntry struct {
	AssignmentID  int64
	AssignedAt    time.Time
	CompletedAt   *time.Time
	RouteID       int64
	StartLocation string
	EndLocation   string
	Distance      float64
	EstimatedTime int
	Status        string
}
