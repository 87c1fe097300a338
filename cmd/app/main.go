package main

import (
	"fmt"
	"log/slog"
	"os"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/employeerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/adapters/out/postgres/vehiclerepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateSyncTrackingCommandHandler(),
		jobs.SyncSchedule{
			Packing:  configs.SyncPackingSchedule,
			Loading:  configs.SyncLoadingSchedule,
			Delivery: configs.SyncDeliverySchedule,
		},
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		RedisURL:             goDotEnvVariable("REDIS_URL"),
		VehicleCacheTTL:      goDotEnvVariable("VEHICLE_CACHE_TTL"),
		SyncPackingSchedule:  goDotEnvVariable("SYNC_PACKING_SCHEDULE"),
		SyncLoadingSchedule:  goDotEnvVariable("SYNC_LOADING_SCHEDULE"),
		SyncDeliverySchedule: goDotEnvVariable("SYNC_DELIVERY_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&trackingrepo.TrackingRecordDTO{},
		&vehiclerepo.VehicleDTO{},
		&employeerepo.EmployeeDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreatePackItemCommandHandler(),
		app.CreateVerifyStorageItemCommandHandler(),
		app.CreateVerifyLoadingItemCommandHandler(),
		app.CreateFileComplaintCommandHandler(),
		app.CreateAssignVehicleCommandHandler(),
		app.CreateBulkAssignVehiclesCommandHandler(),
		app.CreateStartRouteCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateSyncTrackingCommandHandler(),
		app.CreateGetOrderTrackingQueryHandler(),
		app.CreateGetUnassignedOrdersQueryHandler(),
		app.CreateGetVehicleSuggestionQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
