package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alovak/payment-details/internal/logger"
	"github.com/alovak/payment-details/paymentdetails"
	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

func main() {
	defaults := paymentdetails.DefaultConfig()

	flag.String("http-addr", defaults.HTTPAddr, "listen address")
	flag.String("repo-backend", defaults.RepoBackend, "store backend: pg or mem")
	flag.String("db-dsn", "", "postgres connection string")
	flag.Int("db-max-open", defaults.DBMaxOpenConns, "max open postgres connections")
	flag.Int("db-max-idle", defaults.DBMaxIdleConns, "max idle postgres connections")
	flag.String("tls-cert", "", "TLS certificate file; enables HTTPS together with --tls-key")
	flag.String("tls-key", "", "TLS key file")
	flag.StringSlice("cors-origins", defaults.CORSOrigins, "origins allowed to call the API from a browser")
	flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	viper.SetEnvPrefix("PAYMENTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()

	log := logger.New(os.Stdout, viper.GetString("log-level"), true)

	cfg := &paymentdetails.Config{
		HTTPAddr:       viper.GetString("http-addr"),
		RepoBackend:    viper.GetString("repo-backend"),
		DBDSN:          viper.GetString("db-dsn"),
		DBMaxOpenConns: viper.GetInt("db-max-open"),
		DBMaxIdleConns: viper.GetInt("db-max-idle"),
		TLSCertFile:    viper.GetString("tls-cert"),
		TLSKeyFile:     viper.GetString("tls-key"),
		CORSOrigins:    viper.GetStringSlice("cors-origins"),
	}

	app := paymentdetails.NewApp(log, cfg)
	if err := app.Start(); err != nil {
		log.Error("starting app", "err", err)
		os.Exit(1)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.Info("received shutdown signal", slog.String("signal", sig.String()))

	app.Shutdown()
}
