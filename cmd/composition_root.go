package cmd

import (
	"log/slog"

	httpin "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/jobs"
	"waterdelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB).WithCommitObserver(m),
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// readUoWFactory hands out snapshot transactions so a query never observes a
// half-applied transition.
func (c *CompositionRoot) readUoWFactory() queries.ReadUoWFactory {
	return FuncReadUoWFactory(func() queries.ReadUoW {
		return c.uowFactory.CreateSnapshot()
	})
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateRevertDeliveryCommandHandler() commands.RevertDeliveryCommandHandler {
	return commands.NewRevertDeliveryCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateCorrectDeliveryCommandHandler() commands.CorrectDeliveryCommandHandler {
	return commands.NewCorrectDeliveryCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateSoftDeleteOrderCommandHandler() commands.SoftDeleteOrderCommandHandler {
	return commands.NewSoftDeleteOrderCommandHandler(c.ledgerUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderLedgerQueryHandler() queries.GetOrderLedgerQueryHandler {
	return queries.NewGetOrderLedgerQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetCustomerLedgerQueryHandler() queries.GetCustomerLedgerQueryHandler {
	return queries.NewGetCustomerLedgerQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateReconcileCustomerQueryHandler() queries.ReconcileCustomerQueryHandler {
	return queries.NewReconcileCustomerQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateListCustomerIDsQueryHandler() queries.ListCustomerIDsQueryHandler {
	return queries.NewListCustomerIDsQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterCustomer:  c.CreateRegisterCustomerCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AssignOrder:       c.CreateAssignOrderCommandHandler(),
		DispatchOrder:     c.CreateDispatchOrderCommandHandler(),
		DeliverOrder:      c.CreateDeliverOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		RevertDelivery:    c.CreateRevertDeliveryCommandHandler(),
		CorrectDelivery:   c.CreateCorrectDeliveryCommandHandler(),
		SoftDeleteOrder:   c.CreateSoftDeleteOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOrderLedger:    c.CreateGetOrderLedgerQueryHandler(),
		GetCustomerLedger: c.CreateGetCustomerLedgerQueryHandler(),
		ReconcileCustomer: c.CreateReconcileCustomerQueryHandler(),
	}, httpin.DefaultRetryAttempts, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateHTTPServer(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewReconciliationJob(
		c.CreateListCustomerIDsQueryHandler(),
		c.CreateReconcileCustomerQueryHandler(),
		c.metrics,
		c.config.ReconcileSchedule,
		c.logger,
	))
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncReadUoWFactory func() queries.ReadUoW

func (f FuncReadUoWFactory) Create() queries.ReadUoW {
	return f()
}
