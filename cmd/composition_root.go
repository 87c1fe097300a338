package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/vehiclerepo"
	"fulfillment/internal/adapters/out/redis/vehiclecache"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application's use cases to their infrastructure.
// It owns the unit of work factory and the vehicle catalog, which is either
// the plain postgres repository or a Redis read-through cache in front of it.
type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	vehicleCatalog ports.VehicleRepository
	logger         *slog.Logger
}

// NewCompositionRoot builds the dependency graph. When the config names a
// Redis URL, vehicle catalog reads go through the cache.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	root := CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		vehicleCatalog: vehiclerepo.NewGormVehicleRepository(gormDB),
		logger:         logger,
	}

	if config.RedisURL != "" {
		ttl, err := time.ParseDuration(config.VehicleCacheTTL)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("invalid vehicle cache TTL %q: %w", config.VehicleCacheTTL, err)
		}

		cache, err := vehiclecache.NewVehicleCache(config.RedisURL, root.vehicleCatalog, ttl)
		if err != nil {
			return CompositionRoot{}, err
		}
		root.vehicleCatalog = cache
	}

	return root, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return cachedCatalogUoW{
			UnitOfWork: c.uowFactory.Create(),
			catalog:    c.vehicleCatalog,
		}
	})
}

func (c *CompositionRoot) CreatePackItemCommandHandler() commands.PackItemCommandHandler {
	return commands.NewPackItemCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateVerifyStorageItemCommandHandler() commands.VerifyStorageItemCommandHandler {
	return commands.NewVerifyStorageItemCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateVerifyLoadingItemCommandHandler() commands.VerifyLoadingItemCommandHandler {
	return commands.NewVerifyLoadingItemCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	return commands.NewStartRouteCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateFileComplaintCommandHandler() commands.FileComplaintCommandHandler {
	return commands.NewFileComplaintCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignVehicleCommandHandler() commands.AssignVehicleCommandHandler {
	return commands.NewAssignVehicleCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateBulkAssignVehiclesCommandHandler() commands.BulkAssignVehiclesCommandHandler {
	return commands.NewBulkAssignVehiclesCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateSyncTrackingCommandHandler() commands.SyncTrackingCommandHandler {
	return commands.NewSyncTrackingCommandHandler(c.trackingUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVehicleSuggestionQueryHandler() queries.GetVehicleSuggestionQueryHandler {
	// Suggestion reads run outside any transaction; the untracked order
	// repository and the shared catalog cache are enough.
	return queries.NewGetVehicleSuggestionQueryHandler(
		c.uowFactory.Create().OrderRepository(),
		c.vehicleCatalog,
	)
}

// cachedCatalogUoW is a unit of work whose vehicle catalog reads go through
// the shared cache instead of the transaction-bound repository. The catalog
// is read-only within an assignment, so it never needs the transaction.
type cachedCatalogUoW struct {
	ports.UnitOfWork
	catalog ports.VehicleRepository
}

func (u cachedCatalogUoW) VehicleRepository() ports.VehicleRepository {
	return u.catalog
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
