package cmd

// Config carries the environment-driven settings of the fulfillment service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Optional Redis cache in front of the vehicle catalog. Leave RedisURL
	// empty to read the catalog straight from postgres.
	RedisURL        string
	VehicleCacheTTL string

	// Cron expressions for the per-phase tracking sync jobs, six fields
	// with a seconds column.
	SyncPackingSchedule  string
	SyncLoadingSchedule  string
	SyncDeliverySchedule string
}
