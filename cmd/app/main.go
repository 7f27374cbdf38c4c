package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"parcelgo/cmd"
	httpin "parcelgo/internal/adapters/in/http"
	"parcelgo/internal/adapters/out/postgres/courierrepo"
	"parcelgo/internal/adapters/out/postgres/orderrepo"
	"parcelgo/internal/adapters/out/postgres/slotrepo"
	"parcelgo/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DBConnectionString()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if migrateErr := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&slotrepo.SlotDTO{},
		&courierrepo.CourierDTO{},
	); migrateErr != nil {
		log.Fatalf("Failed to migrate database schema: %v", migrateErr)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	dispatchJob := jobs.NewDispatchJob(
		app.CreateDispatchOrdersCommandHandler(),
		configs.DispatchCronSpec,
		slog.Default(),
	)
	if startErr := dispatchJob.Start(); startErr != nil {
		log.Fatalf("Failed to start dispatch job: %v", startErr)
	}
	defer dispatchJob.Stop()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		PaymentServiceURL: goDotEnvVariable("PAYMENT_SERVICE_URL"),
		GeoServiceURL:     goDotEnvVariable("GEO_SERVICE_URL"),
		PricingBaseFare:   goDotEnvFloat("PRICING_BASE_FARE"),
		PricingPerKm:      goDotEnvFloat("PRICING_PER_KM"),
		PricingPerKg:      goDotEnvFloat("PRICING_PER_KG"),
		PricingCurrency:   goDotEnvVariable("PRICING_CURRENCY"),
		PromoTableJSON:    os.Getenv("PROMO_TABLE_JSON"),
		AvgSpeedKmh:       goDotEnvFloat("AVG_SPEED_KMH"),
		DispatchCronSpec:  goDotEnvVariable("DISPATCH_CRON_SPEC"),
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

func goDotEnvFloat(key string) float64 {
	raw := goDotEnvVariable(key)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %q", key, raw)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateQuoteOrderCommandHandler(),
		app.CreateConfirmOrderCommandHandler(),
		app.CreateAssignOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateStartTransitCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCreateSlotCommandHandler(),
		app.CreateCreateCourierCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetUncompletedOrdersQueryHandler(),
		app.CreateGetAvailableSlotsQueryHandler(),
		app.CreateGetAllCouriersQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
