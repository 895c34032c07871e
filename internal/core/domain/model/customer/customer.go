package customer

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// Domain bounds of bottles_in_hand. A negative count means the company owes
// the customer bottles.
const (
	MinBottlesInHand = -100
	MaxBottlesInHand = 10000
)

var (
	// ErrCustomerIsNotConstructed is returned when using an improperly initialized Customer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")
	// ErrFullNameIsRequired is returned when a customer mirror is registered without a name.
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("full name")
)

// Customer is the ledger-relevant part of a customer record: identity plus the
// two aggregate counters that cache the sum of the customer's ledger deltas.
//
// The counters are a projection of the ledger. They must only change through
// Post, which the balance projector calls inside the same transaction that
// appends the matching ledger entry.
//
// Business rules:
//   - bottlesInHand stays within [MinBottlesInHand, MaxBottlesInHand]
//   - accountBalance carries two fraction digits
//   - banned customers cannot place new orders
type Customer struct {
	id             kernel.ID
	fullName       string
	bottlesInHand  int
	accountBalance kernel.Money
	status         AccountStatus
	guard          guard.ConstructorGuard
}

// NewCustomer registers a customer mirror with zero counters and an active account.
func NewCustomer(id kernel.ID, fullName string) (*Customer, error) {
	c := &Customer{
		accountBalance: kernel.ZeroMoney,
		status:         Active,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setFullName(fullName),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer rebuilds a Customer from storage.
//
// Counters are restored as stored, even outside the domain bounds, so that a
// drifted row can still be loaded and reconciled.
func RestoreCustomer(
	id kernel.ID,
	fullName string,
	bottlesInHand int,
	accountBalance kernel.Money,
	status AccountStatus,
) (*Customer, error) {
	c := &Customer{
		bottlesInHand:  bottlesInHand,
		accountBalance: accountBalance,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setFullName(fullName),
		c.setStatus(status),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.ID                { return c.id }
func (c *Customer) FullName() string             { return c.fullName }
func (c *Customer) BottlesInHand() int           { return c.bottlesInHand }
func (c *Customer) AccountBalance() kernel.Money { return c.accountBalance }
func (c *Customer) Status() AccountStatus        { return c.status }

// Post applies one ledger delta to the counters.
//
// When the resulting bottle count would leave the domain bounds an
// *errs.ValueIsOutOfRangeError is returned and neither counter changes.
func (c *Customer) Post(bottles int, balance kernel.Money) error {
	next := c.bottlesInHand + bottles
	if next < MinBottlesInHand || next > MaxBottlesInHand {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"bottles in hand",
			next,
			MinBottlesInHand,
			MaxBottlesInHand,
			fmt.Errorf("customer %s holds %d bottles, delta %+d", c.id, c.bottlesInHand, bottles),
		)
	}

	c.bottlesInHand = next
	c.accountBalance = c.accountBalance.Add(balance)
	return nil
}

// CanOrder reports whether a new order may be created for the customer.
func (c *Customer) CanOrder() error {
	if c.status == Banned {
		return errs.NewValueIsInvalidErrorWithCause(
			"customer",
			fmt.Errorf("customer %s account is %s", c.id, c.status),
		)
	}
	return nil
}

// ChangeStatus mirrors an account status change made by the customer records system.
func (c *Customer) ChangeStatus(status AccountStatus) error {
	return c.setStatus(status)
}

func (c *Customer) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFullNameIsRequired
	}
	c.fullName = name
	return nil
}

func (c *Customer) setStatus(status AccountStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
