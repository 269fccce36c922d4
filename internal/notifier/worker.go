package notifier

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Worker drains the outbox queue and hands each message to the mailer.
// A failed send is nacked back onto the queue once; a message that fails
// again on redelivery is logged and dropped, so a dead SMTP server cannot
// spin the queue. Malformed messages are dropped immediately.
type Worker struct {
	rmq    *RabbitClient
	mailer *Mailer
	logger *zap.Logger
	done   chan struct{}
	cancel context.CancelFunc
}

func NewWorker(rmq *RabbitClient, mailer *Mailer, logger *zap.Logger) *Worker {
	return &Worker{
		rmq:    rmq,
		mailer: mailer,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	cctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	if err := w.rmq.Consume(w.handle); err != nil {
		cancel()
		return err
	}

	w.logger.Info("notification worker started")

	go func() {
		defer close(w.done)
		<-cctx.Done()
		w.logger.Info("notification worker stopped")
	}()

	return nil
}

// handle processes one delivery. Returning an error requeues it; the
// redelivered flag caps that at a single retry.
func (w *Worker) handle(body []byte, redelivered bool) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		w.logger.Error("failed to unmarshal outbox message",
			zap.Error(err),
			zap.ByteString("body", body),
		)
		return nil // poison message, drop it
	}

	if err := w.mailer.Send(msg); err != nil {
		if !redelivered {
			w.logger.Warn("failed to send notification email, requeueing",
				zap.Error(err),
				zap.String("message_id", msg.ID),
				zap.String("kind", string(msg.Kind)),
				zap.String("email", msg.Email),
			)
			return err
		}

		w.logger.Warn("failed to send notification email on retry, dropping",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.String("kind", string(msg.Kind)),
			zap.String("email", msg.Email),
		)
		return nil
	}

	w.logger.Info("notification email sent",
		zap.String("message_id", msg.ID),
		zap.String("kind", string(msg.Kind)),
	)
	return nil
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}
