package customer

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// AccountStatus is the standing of a customer account. It is owned by the
// customer records system and mirrored here only to gate new orders.
type AccountStatus int

const (
	// UnknownAccountStatus is the zero value and is never valid.
	UnknownAccountStatus AccountStatus = iota
	// Active accounts can place orders.
	Active
	// Suspended accounts can place orders; dispatchers see a warning.
	Suspended
	// Banned accounts cannot place new orders.
	Banned
)

var accountStatusNames = map[AccountStatus]string{
	Active:    "active",
	Suspended: "suspended",
	Banned:    "banned",
}

// ParseAccountStatus maps the stored text form back to an AccountStatus.
func ParseAccountStatus(s string) (AccountStatus, error) {
	for st, name := range accountStatusNames {
		if name == s {
			return st, nil
		}
	}
	return UnknownAccountStatus, errs.NewValueIsInvalidErrorWithCause(
		"account status",
		fmt.Errorf("%q is not a valid account status", s),
	)
}

func (s AccountStatus) Validate() error {
	if _, ok := accountStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"account status",
			fmt.Errorf("%d is not a valid account status", s),
		)
	}
	return nil
}

func (s AccountStatus) String() string {
	if name, ok := accountStatusNames[s]; ok {
		return name
	}
	return "unknown"
}
