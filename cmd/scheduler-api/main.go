// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the scheduling service API. It places meetings on team
// calendars according to priority and availability, and handles NATS
// messages for scheduling, cancellation and availability management.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/service"
)

func main() {
	env := parseEnv()
	parseFlags()

	logging.InitStructureLogConfig()

	// Connect to the relational store and migrate the schema.
	db, err := store.ConnectToDB(env.DatabaseDSN)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error connecting to database")
		os.Exit(1)
	}
	if err := store.AutoMigrate(db); err != nil {
		slog.With(logging.ErrKey, err).Error("error migrating database schema")
		os.Exit(1)
	}
	gormStore := store.New(db)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		AvailabilityWorkers: env.AvailabilityWorkers,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	repos := gormStore.Repositories()
	placer := service.NewSlotPlacer(gormStore, repos, serviceConfig)
	schedulingService := service.NewSchedulingService(
		repos.TeamMembers,
		messageBuilder,
		service.NewPriorityScorer(),
		placer,
		serviceConfig,
	)
	meetingService := service.NewMeetingService(
		gormStore,
		repos.Meetings,
		repos.TeamMembers,
		messageBuilder,
		serviceConfig,
	)
	scheduleService := service.NewScheduleService(
		repos.BlockedTimes,
		repos.ScheduleEntries,
		serviceConfig,
	)

	// Initialize handlers
	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, meetingService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	handlersBySubject := map[string]domain.MessageHandler{
		models.MeetingScheduleSubject:        schedulingHandler,
		models.MeetingCancelSubject:          schedulingHandler,
		models.MeetingsListSubject:           schedulingHandler,
		models.BlockedTimeAddSubject:         scheduleHandler,
		models.BlockedTimeRemoveSubject:      scheduleHandler,
		models.BlockedTimesListSubject:       scheduleHandler,
		models.ScheduleTemplateCreateSubject: scheduleHandler,
		models.ScheduleListSubject:           scheduleHandler,
	}

	// Create NATS subscriptions for the service.
	if err := createNatsSubscriptions(ctx, natsConn, handlersBySubject); err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	slog.InfoContext(ctx, "scheduling service ready",
		"scheduling_ready", schedulingHandler.HandlerReady(),
		"schedule_ready", scheduleHandler.HandlerReady(),
	)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(natsConn, &gracefulCloseWG, cancel)
}
