// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
)

// natsMessage adapts a *nats.Msg to the domain.Message interface.
type natsMessage struct {
	msg *nats.Msg
}

func (m *natsMessage) Subject() string {
	return m.msg.Subject
}

func (m *natsMessage) Data() []byte {
	return m.msg.Data
}

func (m *natsMessage) Respond(data []byte) error {
	return m.msg.Respond(data)
}

func (m *natsMessage) HasReply() bool {
	return m.msg.Reply != ""
}

// setupNATS connects to the NATS server and registers a closed handler that
// releases the graceful shutdown wait group.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(25*time.Second),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection established", "url", env.NatsURL)
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.ErrorContext(ctx, "NATS async error", logging.ErrKey, err, "subject", s.Subject)
				return
			}
			slog.ErrorContext(ctx, "NATS async error", logging.ErrKey, err)
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
			gracefulCloseWG.Done()
			select {
			case done <- os.Interrupt:
			default:
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}
	return natsConn, nil
}

// createNatsSubscriptions subscribes the message handlers on the scheduling
// service queue group.
func createNatsSubscriptions(ctx context.Context, natsConn *nats.Conn, handlersBySubject map[string]domain.MessageHandler) error {
	for subject, handler := range handlersBySubject {
		handler := handler
		_, err := natsConn.QueueSubscribe(subject, models.SchedulerQueue, func(m *nats.Msg) {
			handler.HandleMessage(ctx, &natsMessage{msg: m})
		})
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "subscribed to NATS subject", "subject", subject, "queue", models.SchedulerQueue)
	}
	return nil
}

// gracefulShutdown drains the NATS connection and waits for in-flight
// handlers to finish.
func gracefulShutdown(natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")
	cancel()
	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}
	gracefulCloseWG.Wait()
}
