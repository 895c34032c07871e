package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for AccountStatus.
const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusBanned    AccountStatus = "banned"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Defines values for EntryAction.
const (
	EntryActionCORRECTION       EntryAction = "CORRECTION"
	EntryActionDELIVERED        EntryAction = "DELIVERED"
	EntryActionDELIVERYREVERTED EntryAction = "DELIVERY_REVERTED"
	EntryActionSOFTDELETED      EntryAction = "SOFT_DELETED"
)

// Defines values for OrderStatus.
const (
	OrderStatusAssigned       OrderStatus = "assigned"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusPending        OrderStatus = "pending"
)

// Defines values for PaymentMethod.
const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodPos    PaymentMethod = "pos"
)

// Id Decimal int64 identifier
type Id = string

// Money defines model for Money.
type Money = string

type AccountStatus string

type EntryAction string

type OrderStatus string

type PaymentMethod string

// Assignment defines model for Assignment.
type Assignment struct {
	DriverId Id `json:"driverId"`
}

// Correction defines model for Correction.
type Correction struct {
	BottlesDelivered int      `json:"bottlesDelivered"`
	BottlesReturned  int      `json:"bottlesReturned"`
	Payment          *Payment `json:"payment,omitempty"`
	Reason           string   `json:"reason"`
}

// Created defines model for Created.
type Created struct {
	Id Id `json:"id"`
}

// CustomerLedger defines model for CustomerLedger.
type CustomerLedger struct {
	AccountBalance Money         `json:"accountBalance"`
	AccountStatus  AccountStatus `json:"accountStatus"`
	BottlesInHand  int           `json:"bottlesInHand"`
	CustomerId     Id            `json:"customerId"`
	Entries        []Entry       `json:"entries"`
	FullName       string        `json:"fullName"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	BottlesDelivered int      `json:"bottlesDelivered"`
	BottlesReturned  int      `json:"bottlesReturned"`
	Payment          *Payment `json:"payment,omitempty"`
}

// Entry defines model for Entry.
type Entry struct {
	Action       EntryAction        `json:"action"`
	BalanceDelta *Money             `json:"balanceDelta,omitempty"`
	BottlesDelta *int               `json:"bottlesDelta,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	CustomerId   *Id                `json:"customerId,omitempty"`
	Details      *map[string]string `json:"details,omitempty"`
	Id           int64              `json:"id"`
	NewStatus    *string            `json:"newStatus,omitempty"`
	OldStatus    *string            `json:"oldStatus,omitempty"`
	OperationId  openapi_types.UUID `json:"operationId"`
	OrderId      Id                 `json:"orderId"`
	Reverses     *int64             `json:"reverses,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewCustomer defines model for NewCustomer.
type NewCustomer struct {
	FullName string `json:"fullName"`
	Id       Id     `json:"id"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	AddressId             *Id                 `json:"addressId,omitempty"`
	CustomerId            *Id                 `json:"customerId,omitempty"`
	DeliveryWindow        *string             `json:"deliveryWindow,omitempty"`
	Items                 []NewOrderItem      `json:"items"`
	RequestedDeliveryDate *openapi_types.Date `json:"requestedDeliveryDate,omitempty"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductId Id  `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OptionalReason defines model for OptionalReason.
type OptionalReason struct {
	Reason *string `json:"reason,omitempty"`
}

// Order defines model for Order.
type Order struct {
	AddressId             *Id                 `json:"addressId,omitempty"`
	BottlesDelivered      int                 `json:"bottlesDelivered"`
	BottlesReturned       int                 `json:"bottlesReturned"`
	CancellationReason    *string             `json:"cancellationReason,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	CustomerId            *Id                 `json:"customerId,omitempty"`
	Deleted               bool                `json:"deleted"`
	DeliveredAt           *time.Time          `json:"deliveredAt,omitempty"`
	DeliveryWindow        *string             `json:"deliveryWindow,omitempty"`
	DriverId              *Id                 `json:"driverId,omitempty"`
	Id                    Id                  `json:"id"`
	IsPaid                bool                `json:"isPaid"`
	Items                 []OrderItem         `json:"items"`
	Payment               *Payment            `json:"payment,omitempty"`
	RequestedDeliveryDate *openapi_types.Date `json:"requestedDeliveryDate,omitempty"`
	Status                OrderStatus         `json:"status"`
	TotalAmount           Money               `json:"totalAmount"`
	UpdatedAt             *time.Time          `json:"updatedAt,omitempty"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Id        Id    `json:"id"`
	ProductId Id    `json:"productId"`
	Quantity  int   `json:"quantity"`
	UnitPrice Money `json:"unitPrice"`
}

// Payment defines model for Payment.
type Payment struct {
	Amount Money         `json:"amount"`
	Method PaymentMethod `json:"method"`
}

// Reason defines model for Reason.
type Reason struct {
	Reason string `json:"reason"`
}

// Reconciliation defines model for Reconciliation.
type Reconciliation struct {
	BalanceDrift   Money `json:"balanceDrift"`
	BottlesDrift   int   `json:"bottlesDrift"`
	Consistent     bool  `json:"consistent"`
	CustomerId     Id    `json:"customerId"`
	DerivedBalance Money `json:"derivedBalance"`
	DerivedBottles int   `json:"derivedBottles"`
	Entries        int   `json:"entries"`
	StoredBalance  Money `json:"storedBalance"`
	StoredBottles  int   `json:"storedBottles"`
}

// RegisterCustomerJSONRequestBody defines body for RegisterCustomer for application/json ContentType.
type RegisterCustomerJSONRequestBody = NewCustomer

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// SoftDeleteOrderJSONRequestBody defines body for SoftDeleteOrder for application/json ContentType.
type SoftDeleteOrderJSONRequestBody = Reason

// AssignOrderJSONRequestBody defines body for AssignOrder for application/json ContentType.
type AssignOrderJSONRequestBody = Assignment

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = OptionalReason

// CorrectDeliveryJSONRequestBody defines body for CorrectDelivery for application/json ContentType.
type CorrectDeliveryJSONRequestBody = Correction

// DeliverOrderJSONRequestBody defines body for DeliverOrder for application/json ContentType.
type DeliverOrderJSONRequestBody = Delivery

// RevertDeliveryJSONRequestBody defines body for RevertDelivery for application/json ContentType.
type RevertDeliveryJSONRequestBody = Reason
