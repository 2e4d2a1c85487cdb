package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"tripplanner/api"
	"tripplanner/db"
	"tripplanner/message"
	"tripplanner/migrations"
	"tripplanner/pkg/log"
	"tripplanner/service"
	observability "tripplanner/trace"

	"github.com/sirupsen/logrus"
)

func main() {
	rebuildReadModel := flag.Bool("rebuild-read-model", false, "replay the event log into the trip read model and exit")
	flag.Parse()

	log.Init(logrus.InfoLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	tp := observability.ConfigureTraceProvider()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("Could not shut down trace provider")
		}
	}()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	if err != nil {
		panic(err)
	}
	defer conn.Close()
	conn.MigrateSchema()

	if *rebuildReadModel {
		err := migrations.RebuildTripViews(ctx, db.NewEventLogRepository(&conn), db.NewTripReadModel(&conn))
		if err != nil {
			panic(err)
		}
		return
	}

	redisClient := message.NewRedisClient(os.Getenv("REDIS_ADDR"))
	defer redisClient.Close()

	svc := service.New(redisClient, conn, service.Config{
		Provider: api.Config{
			BaseURL: os.Getenv("PROVIDER_ADDR"),
			APIKey:  os.Getenv("PROVIDER_API_KEY"),
		},
		Rates:    ratesFromEnv(),
		HTTPAddr: os.Getenv("HTTP_ADDR"),
	})

	if err := svc.Run(ctx); err != nil {
		panic(err)
	}
}

// ratesFromEnv parses EXCHANGE_RATES, e.g. "USD=1000000,EUR=1080000,PKR=3600"
// where values are micro-units of the base currency.
func ratesFromEnv() map[string]int64 {
	rates := map[string]int64{}
	for _, pair := range strings.Split(os.Getenv("EXCHANGE_RATES"), ",") {
		currency, rate, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		value, err := strconv.ParseInt(rate, 10, 64)
		if err != nil {
			logrus.WithField("pair", pair).Warn("Skipping malformed exchange rate")
			continue
		}
		rates[currency] = value
	}

	return rates
}
