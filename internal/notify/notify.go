// AngelaMos | 2026
// notify.go

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/mailer"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/mq"
	"github.com/vipinpawar/jeopardy-app/internal/user"
)

const (
	ChannelMail  = "mail"
	ChannelQueue = "queue"
)

// Notice is the queued form of a download notification.
type Notice struct {
	UserID    string            `json:"userId"`
	Downloads []mailer.Download `json:"downloads"`
	CreatedAt time.Time         `json:"createdAt"`
}

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// MailNotifier sends download links inline, in the request goroutine.
type MailNotifier struct {
	users UserLookup
	mail  Sender
}

func NewMailNotifier(users UserLookup, mail Sender) *MailNotifier {
	return &MailNotifier{users: users, mail: mail}
}

func (n *MailNotifier) NotifyDownloads(
	ctx context.Context,
	userID string,
	downloads []mailer.Download,
) error {
	err := n.deliver(ctx, userID, downloads)
	metrics.ObserveNotification(ChannelMail, err)
	return err
}

func (n *MailNotifier) deliver(ctx context.Context, userID string, downloads []mailer.Download) error {
	u, err := n.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	msg, err := mailer.DownloadLinks(u.Email, downloads)
	if err != nil {
		return err
	}

	return n.mail.Send(ctx, msg)
}

// QueueNotifier hands notifications to a broker for the worker to deliver.
type QueueNotifier struct {
	broker  mq.Broker
	channel string
	now     func() time.Time
}

func NewQueueNotifier(broker mq.Broker, channel string) *QueueNotifier {
	return &QueueNotifier{broker: broker, channel: channel, now: time.Now}
}

func (n *QueueNotifier) NotifyDownloads(
	ctx context.Context,
	userID string,
	downloads []mailer.Download,
) error {
	_, err := mq.PublishJSON(ctx, n.broker, n.channel, Notice{
		UserID:    userID,
		Downloads: downloads,
		CreatedAt: n.now().UTC(),
	}, map[string]string{"type": "downloads"})
	metrics.ObserveNotification(ChannelQueue, err)
	if err != nil {
		return fmt.Errorf("enqueue download notice: %w", err)
	}
	return nil
}

// Worker consumes queued notices and mails them.
type Worker struct {
	broker   mq.Broker
	channel  string
	notifier *MailNotifier
	logger   *slog.Logger
}

func NewWorker(broker mq.Broker, channel string, notifier *MailNotifier, logger *slog.Logger) *Worker {
	return &Worker{broker: broker, channel: channel, notifier: notifier, logger: logger}
}

// Run blocks until ctx is cancelled. Cancellation is a clean exit.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("notification worker started", "channel", w.channel)

	err := w.broker.Subscribe(ctx, w.channel, w.Handle)
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		w.logger.Info("notification worker stopped")
		return nil
	}
	return err
}

// Handle delivers a single notice. Undeliverable notices are dropped so
// they are not redelivered forever; transient send failures are retried.
func (w *Worker) Handle(ctx context.Context, msg mq.Message) error {
	notice, err := decodeNotice(msg.Data)
	if err != nil {
		w.logger.Warn("dropping malformed notice", "message_id", msg.ID, "error", err)
		return nil
	}

	err = w.notifier.NotifyDownloads(ctx, notice.UserID, notice.Downloads)
	switch {
	case err == nil:
		w.logger.Info("download links sent",
			"message_id", msg.ID,
			"user_id", notice.UserID,
			"downloads", len(notice.Downloads),
		)
		return nil
	case isPermanent(err):
		w.logger.Warn("dropping undeliverable notice",
			"message_id", msg.ID,
			"user_id", notice.UserID,
			"error", err,
		)
		return nil
	default:
		w.logger.Error("send download links", "message_id", msg.ID, "error", err)
		return err
	}
}
