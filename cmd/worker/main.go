// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foamjobs/internal/adapter/persistence/repository"
	"foamjobs/internal/infrastructure/bus"
	"foamjobs/internal/infrastructure/database"
	"foamjobs/internal/usecase"
	"foamjobs/internal/worker"
	"foamjobs/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type config struct {
	NATSURL          string
	RigPacketSubject string
	SweepSchedule    string
}

func loadConfig() (config, error) {
	cfg := config{
		NATSURL:          getenv("NATS_URL", "nats://127.0.0.1:4222"),
		RigPacketSubject: getenv("RIG_PACKET_SUBJECT", "rig.packets"),
		SweepSchedule:    getenv("SWEEP_SCHEDULE", "0 7 * * *"),
	}

	if _, err := cron.ParseStandard(cfg.SweepSchedule); err != nil {
		return config{}, fmt.Errorf("invalid SWEEP_SCHEDULE: %w", err)
	}

	return cfg, nil
}

func main() {
	_ = godotenv.Load()

	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		fatal(log, "load config", err)
	}
	log.Info("worker starting",
		zap.String("nats_url", cfg.NATSURL),
		zap.String("rig_packet_subject", cfg.RigPacketSubject),
		zap.String("sweep_schedule", cfg.SweepSchedule))

	ddb := database.ConnectDynamoDB()
	jobRepo := repository.NewJobDynamoRepository(ddb)

	nc, err := bus.Connect(cfg.NATSURL)
	if err != nil {
		fatal(log, "connect to NATS", err)
	}
	defer nc.Close()
	log.Info("connected to NATS", zap.String("nats_url", cfg.NATSURL))

	events := bus.NewEventPublisher(nc)
	jobs := usecase.NewJobUseCase(jobRepo, events)

	listener := worker.NewRigListener(jobs, logger.Named(log, "rig"))
	sub, err := nc.SubscribeJSON(cfg.RigPacketSubject, listener.Handle)
	if err != nil {
		fatal(log, "subscribe rig packets", err)
	}
	defer func() { _ = sub.Unsubscribe() }()
	log.Info("listening for rig packets", zap.String("subject", cfg.RigPacketSubject))

	sweep := worker.NewScheduleSweep(jobRepo, events, logger.Named(log, "sweep"))
	cr := cron.New()
	if _, err := cr.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_ = sweep.Run(ctx)
	}); err != nil {
		fatal(log, "schedule sweep", err)
	}
	cr.Start()
	defer cr.Stop()
	log.Info("schedule sweep armed", zap.String("cron", cfg.SweepSchedule))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("worker shutting down")
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	os.Exit(1)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
