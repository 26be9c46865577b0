package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand submits a new route. The handler stores it and then
// tries to assign a driver right away.
//
// Example:
//
//	cmd, err := NewCreateRouteCommand("Warehouse A", "Store B", 12.5, 30)
//	if err != nil {
//	    return err
//	}
//	r, err := handler.Handle(ctx, cmd)
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	start         kernel.Place
	end           kernel.Place
	distance      kernel.Distance
	estimatedTime kernel.Minutes

	guard guard.ConstructorGuard
}

func NewCreateRouteCommand(
	start, end string,
	distance float64,
	estimatedTime int,
) (CreateRouteCommand, error) {
	cmd := CreateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStart(start),
		cmd.setEnd(end),
		cmd.setDistance(distance),
		cmd.setEstimatedTime(estimatedTime),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return cmd, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) Start() kernel.Place {
	return c.start
}

func (c CreateRouteCommand) End() kernel.Place {
	return c.end
}

func (c CreateRouteCommand) Distance() kernel.Distance {
	return c.distance
}

func (c CreateRouteCommand) EstimatedTime() kernel.Minutes {
	return c.estimatedTime
}

func (c *CreateRouteCommand) setStart(start string) (err error) {
	c.start, err = kernel.NewPlace(start)
	return err
}

func (c *CreateRouteCommand) setEnd(end string) (err error) {
	c.end, err = kernel.NewPlace(end)
	return err
}

func (c *CreateRouteCommand) setDistance(distance float64) (err error) {
	c.distance, err = kernel.NewDistance(distance)
	return err
}

func (c *CreateRouteCommand) setEstimatedTime(estimatedTime int) (err error) {
	c.estimatedTime, err = kernel.NewMinutes(estimatedTime)
	return err
}
