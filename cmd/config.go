package cmd

import "fmt"

// Config carries every runtime setting of the application. Values are loaded
// from the environment in cmd/app.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PaymentServiceURL string
	GeoServiceURL     string

	PricingBaseFare float64
	PricingPerKm    float64
	PricingPerKg    float64
	PricingCurrency string
	PromoTableJSON  string

	AvgSpeedKmh      float64
	DispatchCronSpec string
}

// DBConnectionString builds the postgres DSN from the DB settings.
func (c Config) DBConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
