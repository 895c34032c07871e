package http

import (
	"context"
	"log/slog"
	"net/http"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// DefaultRetryAttempts bounds how often a command is re-run after the store
// aborted its transaction because of a concurrent writer.
const DefaultRetryAttempts = 3

// Handlers bundles the use cases exposed over HTTP.
type Handlers struct {
	RegisterCustomer commands.RegisterCustomerCommandHandler
	CreateOrder      commands.CreateOrderCommandHandler
	AssignOrder      commands.AssignOrderCommandHandler
	DispatchOrder    commands.DispatchOrderCommandHandler
	DeliverOrder     commands.DeliverOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	RevertDelivery   commands.RevertDeliveryCommandHandler
	CorrectDelivery  commands.CorrectDeliveryCommandHandler
	SoftDeleteOrder  commands.SoftDeleteOrderCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetOrderLedger    queries.GetOrderLedgerQueryHandler
	GetCustomerLedger queries.GetCustomerLedgerQueryHandler
	ReconcileCustomer queries.ReconcileCustomerQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h             Handlers
	retryAttempts int
	logger        *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, retryAttempts int, logger *slog.Logger) *Server {
	if retryAttempts < 1 {
		retryAttempts = DefaultRetryAttempts
	}
	return &Server{
		h:             h,
		retryAttempts: retryAttempts,
		logger:        logger.With("component", "http_server"),
	}
}

// execute runs a command, re-running it on transaction conflicts.
func (s *Server) execute(ctx echo.Context, fn func(ctx context.Context) error) error {
	return commands.RetryOnConflict(ctx.Request().Context(), s.retryAttempts, fn)
}

// RegisterCustomer handles POST /api/v1/customers.
func (s *Server) RegisterCustomer(ctx echo.Context) error {
	var body servers.RegisterCustomerJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.ParseID(body.Id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRegisterCustomerCommand(id, body.FullName)
	if err != nil {
		return err
	}

	if err = s.execute(ctx, func(c context.Context) error {
		return s.h.RegisterCustomer.Handle(c, cmd)
	}); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.String()})
}

// GetCustomerLedger handles GET /api/v1/customers/{customerId}/ledger.
func (s *Server) GetCustomerLedger(ctx echo.Context, customerId int64) error {
	id, err := kernel.IDFrom(customerId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCustomerLedgerQuery(id)
	if err != nil {
		return err
	}

	view, err := s.h.GetCustomerLedger.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toCustomerLedger(view))
}

// ReconcileCustomer handles GET /api/v1/customers/{customerId}/reconciliation.
// Drift is answered with 409 and the full comparison in the body.
func (s *Server) ReconcileCustomer(ctx echo.Context, customerId int64) error {
	id, err := kernel.IDFrom(customerId)
	if err != nil {
		return err
	}
	query, err := queries.NewReconcileCustomerQuery(id)
	if err != nil {
		return err
	}

	r, err := s.h.ReconcileCustomer.Handle(ctx.Request().Context(), query)
	if r.HasDrift() {
		s.logger.WarnContext(ctx.Request().Context(), "Customer counters drifted from ledger", "error", err)
		return ctx.JSON(http.StatusConflict, toReconciliation(r))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toReconciliation(r))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	cmd, err := newCreateOrderCommand(kernel.NewID(), body)
	if err != nil {
		return err
	}

	if err = s.execute(ctx, func(c context.Context) error {
		return s.h.CreateOrder.Handle(c, cmd)
	}); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.OrderID().String()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId int64) error {
	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// GetOrderLedger handles GET /api/v1/orders/{orderId}/ledger.
func (s *Server) GetOrderLedger(ctx echo.Context, orderId int64) error {
	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderLedgerQuery(id)
	if err != nil {
		return err
	}

	entries, err := s.h.GetOrderLedger.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toEntries(entries))
}

// AssignOrder handles POST /api/v1/orders/{orderId}/assign.
func (s *Server) AssignOrder(ctx echo.Context, orderId int64) error {
	var body servers.AssignOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	driverID, err := kernel.ParseID(body.DriverId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignOrderCommand(id, driverID)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.AssignOrder.Handle(c, cmd)
	})
}

// DispatchOrder handles POST /api/v1/orders/{orderId}/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context, orderId int64) error {
	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDispatchOrderCommand(id)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.DispatchOrder.Handle(c, cmd)
	})
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderId int64) error {
	var body servers.DeliverOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	payment, err := toPayment(body.Payment)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeliverOrderCommand(id, body.BottlesDelivered, body.BottlesReturned, payment)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.DeliverOrder.Handle(c, cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is
// optional.
func (s *Server) CancelOrder(ctx echo.Context, orderId int64) error {
	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}
	cmd, err := commands.NewCancelOrderCommand(id, reason)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.CancelOrder.Handle(c, cmd)
	})
}

// RevertDelivery handles POST /api/v1/orders/{orderId}/revert.
func (s *Server) RevertDelivery(ctx echo.Context, orderId int64) error {
	var body servers.RevertDeliveryJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRevertDeliveryCommand(id, body.Reason)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.RevertDelivery.Handle(c, cmd)
	})
}

// CorrectDelivery handles POST /api/v1/orders/{orderId}/correct.
func (s *Server) CorrectDelivery(ctx echo.Context, orderId int64) error {
	var body servers.CorrectDeliveryJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	payment, err := toPayment(body.Payment)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCorrectDeliveryCommand(id, body.BottlesDelivered, body.BottlesReturned, payment, body.Reason)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.CorrectDelivery.Handle(c, cmd)
	})
}

// SoftDeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) SoftDeleteOrder(ctx echo.Context, orderId int64) error {
	var body servers.SoftDeleteOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest("Invalid request body")
	}

	id, err := kernel.IDFrom(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSoftDeleteOrderCommand(id, body.Reason)
	if err != nil {
		return err
	}

	return s.transition(ctx, func(c context.Context) error {
		return s.h.SoftDeleteOrder.Handle(c, cmd)
	})
}

func (s *Server) transition(ctx echo.Context, fn func(ctx context.Context) error) error {
	if err := s.execute(ctx, fn); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
