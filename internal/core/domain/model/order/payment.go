package order

import (
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// PaymentMethod is how a driver collected money at the door.
type PaymentMethod string

const (
	Cash   PaymentMethod = "cash"
	POS    PaymentMethod = "pos"
	Online PaymentMethod = "online"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, POS, Online:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
	}
}

// MaxPaymentAmount is the largest amount a numeric(10,2) column holds.
var MaxPaymentAmount = kernel.MustMoney("99999999.99")

// Payment is money collected on delivery. A collected payment is posted to the
// customer's account balance.
type Payment struct {
	amount kernel.Money
	method PaymentMethod
}

func NewPayment(amount kernel.Money, method PaymentMethod) (Payment, error) {
	if amount.IsNegative() {
		return Payment{}, errs.NewQuantityIsInvalidError("payment amount", amount.String())
	}
	if amount.Cmp(MaxPaymentAmount) > 0 {
		return Payment{}, errs.NewQuantityIsTooLargeError("payment amount", amount.String(), MaxPaymentAmount.String())
	}
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{amount: amount, method: method}, nil
}

func (p Payment) Amount() kernel.Money  { return p.amount }
func (p Payment) Method() PaymentMethod { return p.method }
