package commands

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// OrderLine is one requested product. The unit price is not part of the
// request; it is read from the catalog when the order is created.
type OrderLine struct {
	ProductID kernel.ID
	Quantity  int
}

// CreateOrderCommand represents a request to create a new water delivery order.
// A nil customer id creates a walk-in order whose ledger entries do not touch
// any customer counters.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewID(), &customerID, nil, nil, "09:00-12:00",
//	    []OrderLine{{ProductID: bottle19L, Quantity: 5}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.ID
	customerID            *kernel.ID
	addressID             *kernel.ID
	requestedDeliveryDate *time.Time
	deliveryWindow        string
	lines                 []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and line quantities. Product
// existence and the customer's account status are checked by the handler.
func NewCreateOrderCommand(
	orderID kernel.ID,
	customerID *kernel.ID,
	addressID *kernel.ID,
	requestedDeliveryDate *time.Time,
	deliveryWindow string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		addressID:             addressID,
		requestedDeliveryDate: requestedDeliveryDate,
		deliveryWindow:        deliveryWindow,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.ID                { return c.orderID }
func (c CreateOrderCommand) CustomerID() *kernel.ID            { return c.customerID }
func (c CreateOrderCommand) AddressID() *kernel.ID             { return c.addressID }
func (c CreateOrderCommand) RequestedDeliveryDate() *time.Time { return c.requestedDeliveryDate }
func (c CreateOrderCommand) DeliveryWindow() string            { return c.deliveryWindow }
func (c CreateOrderCommand) Lines() []OrderLine                { return slices.Clone(c.lines) }

func (c *CreateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID *kernel.ID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if line.Quantity <= 0 {
			return errs.NewQuantityIsInvalidError(fmt.Sprintf("line %d quantity", i), line.Quantity)
		}
	}

	c.lines = slices.Clone(lines)
	return nil
}
