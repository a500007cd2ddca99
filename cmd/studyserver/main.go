package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/migrations"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

var buildtime string
var shutdownEnabled bool

func main() {
	var logLevel = os.Getenv("LOGGING_LEVEL")
	encoderConfig := ecszap.NewDefaultEncoderConfig()
	var core zapcore.Core
	switch logLevel {
	case "DEVELOPMENT":
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.DebugLevel)
	default:
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.InfoLevel)
	}
	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	zap.S().Infof("This is studyserver build date: %s", buildtime)

	// Read environment variables
	dbHost := "db"
	if os.Getenv("DB_HOST") != "" {
		dbHost = os.Getenv("DB_HOST")
	}

	dbPortString := "3306"
	if os.Getenv("DB_PORT") != "" {
		dbPortString = os.Getenv("DB_PORT")
	}
	dbPort, err := strconv.Atoi(dbPortString)
	if err != nil {
		zap.S().Errorf("Cannot parse DB_PORT: not a number: %s", dbPortString)
		return // Abort program
	}

	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	listenAddress := ":8080"
	if os.Getenv("STUDY_API_PORT") != "" {
		listenAddress = ":" + os.Getenv("STUDY_API_PORT")
	}

	services.ConfigureSeeding(os.Getenv("SEED_ENABLED") == "true", os.Getenv("SEED_DATA_DIR"))

	// Prometheus
	metricsPath := "/metrics"
	metricsPort := ":2112"
	zap.S().Debugf("Setting up metrics %s %v", metricsPath, metricsPort)
	http.Handle(metricsPath, promhttp.Handler())
	go func() {
		/* #nosec G114 */
		err := http.ListenAndServe(metricsPort, nil)
		if err != nil {
			zap.S().Errorf("Error starting metrics: %s", err)
		}
	}()

	health := healthcheck.NewHandler()
	shutdownEnabled = false
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(100))
	health.AddReadinessCheck("shutdownEnabled", isShutdownEnabled())
	health.AddReadinessCheck("database", func() error {
		if !database.IsAvailable() {
			return fmt.Errorf("database not reachable")
		}
		return nil
	})
	go func() {
		/* #nosec G114 */
		err := http.ListenAndServe("0.0.0.0:8086", health)
		if err != nil {
			zap.S().Errorf("Error starting healthcheck: %s", err)
		}
	}()

	// Allow graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)

	database.Connect(dbUser, dbPassword, dbName, dbHost, dbPort, sigs)
	zap.S().Debugf("DB initialized.. %s", dbHost)

	// Schema is brought up to date before the first request, never during one
	err = migrations.Migrate(database.Db)
	if err != nil {
		zap.S().Fatalf("Failed to migrate schema: %s", err)
	}

	go func() {
		sig := <-sigs

		zap.S().Infof("Received signal %s", sig)

		ShutdownApplicationGraceful()
	}()

	SetupRestAPI(listenAddress)
}

func isShutdownEnabled() healthcheck.Check {
	return func() error {
		if shutdownEnabled {
			return fmt.Errorf("shutdown")
		}
		return nil
	}
}

// ShutdownApplicationGraceful stops taking new work, drains open requests
// and closes the database pool
func ShutdownApplicationGraceful() {
	zap.S().Infof("Shutting down application")
	shutdownEnabled = true

	time.Sleep(10 * time.Second) // Wait until all remaining open connections are handled

	database.Shutdown()

	zap.S().Infof("Successful shutdown. Exiting.")

	// Gracefully exit.
	// (Use runtime.GoExit() if you need to call defers)
	os.Exit(0)
}
