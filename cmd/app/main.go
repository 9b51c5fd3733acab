package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mei131412/gui-airline/config"
	"github.com/mei131412/gui-airline/internal/bootstrap"
	"github.com/mei131412/gui-airline/internal/cache"
	"github.com/mei131412/gui-airline/internal/kafka"
	"github.com/mei131412/gui-airline/internal/payment"
	"github.com/mei131412/gui-airline/internal/repository"
	"github.com/mei131412/gui-airline/internal/service/flights"
	"github.com/mei131412/gui-airline/internal/service/reservations"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	registry := repository.NewRegistry()
	flightService := flights.NewFlightService(registry, redisCache)
	reservationService := reservations.NewReservationService(
		registry.Reservations(),
		registry,
		payment.NewInProcessGateway(),
		redisCache,
		producer,
		cfg.Kafka.ReservationsTopic,
		time.Duration(cfg.Booking.SeatHoldTTLSeconds)*time.Second,
		reservations.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, reservationService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
