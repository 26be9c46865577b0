package servers

import "time"

// Error is the body of every non-2xx response.
type Error struct {
	Error string `json:"error"`
}

type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewDriver is the POST /drivers body. Pointers tell a missing field from a
// zero value; the contract check has already rejected missing fields by the
// time a handler sees it.
type NewDriver struct {
	Id           *string `json:"id"`
	Name         *string `json:"name"`
	LicenseType  *string `json:"licenseType"`
	Availability *bool   `json:"availability"`
}

type Driver struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	LicenseType  string `json:"licenseType"`
	Availability bool   `json:"availability"`
}

type DriverSummary struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// NewRoute is the POST /routes body.
type NewRoute struct {
	StartLocation *string  `json:"startLocation"`
	EndLocation   *string  `json:"endLocation"`
	Distance      *float64 `json:"distance"`
	EstimatedTime *int     `json:"estimatedTime"`
}

type Route struct {
	Id               int64   `json:"id"`
	StartLocation    string  `json:"startLocation"`
	EndLocation      string  `json:"endLocation"`
	Distance         float64 `json:"distance"`
	EstimatedTime    int     `json:"estimatedTime"`
	Status           string  `json:"status"`
	AssignedDriverId *string `json:"assignedDriverId"`
}

type ScheduledRoute struct {
	Id            int64   `json:"id"`
	StartLocation string  `json:"startLocation"`
	EndLocation   string  `json:"endLocation"`
	Distance      float64 `json:"distance"`
	EstimatedTime int     `json:"estimatedTime"`
	Status        string  `json:"status"`
}

type ScheduleEntry struct {
	Route  ScheduledRoute `json:"route"`
	Driver *DriverSummary `json:"driver"`
}

type Schedule struct {
	Data []ScheduleEntry `json:"data"`
}

type HistoryEntry struct {
	AssignmentId  int64      `json:"assignmentId"`
	AssignedAt    time.Time  `json:"assignedAt"`
	CompletedAt   *time.Time `json:"completedAt"`
	RouteId       int64      `json:"routeId"`
	StartLocation string     `json:"startLocation"`
	EndLocation   string     `json:"endLocation"`
	Distance      float64    `json:"distance"`
	EstimatedTime int        `json:"estimatedTime"`
	Status        string     `json:"status"`
}

type DriverHistory struct {
	Driver  DriverSummary  `json:"driver"`
	History []HistoryEntry `json:"history"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type RoutePage struct {
	Data       []Route    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListRoutesParams defines parameters for ListRoutes.
type ListRoutesParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}
