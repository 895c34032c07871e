package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrRegisterCustomerCommandIsNotConstructed = errors.New(
		"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
	)
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("full name")
)

// RegisterCustomerCommand mirrors a customer from the customer directory into
// the ledger service, starting with zero counters.
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.ID
	fullName   string

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(customerID kernel.ID, fullName string) (RegisterCustomerCommand, error) {
	cmd := RegisterCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setFullName(fullName),
	); err != nil {
		return RegisterCustomerCommand{}, err
	}

	return cmd, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) CustomerID() kernel.ID {
	return c.customerID
}

func (c RegisterCustomerCommand) FullName() string {
	return c.fullName
}

func (c *RegisterCustomerCommand) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *RegisterCustomerCommand) setFullName(name string) error {
	if name == "" {
		return ErrFullNameIsRequired
	}

	c.fullName = name
	return nil
}
