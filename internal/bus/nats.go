// internal/bus/nats.go
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nats-io/nats.go"

	"github.com/tendant/bucket-thumbnailer/pkg/schema"
)

type Client struct{ nc *nats.Conn }

func Connect(url string) (*Client, error) {
	nc, err := nats.Connect(url,
		nats.Name("bucket-thumbnailer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc}, nil
}

func (c *Client) Close() {
	if c.nc != nil {
		_ = c.nc.Drain()
	}
}

func (c *Client) PublishJSON(subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.nc.Publish(subject, b)
}

// DecodeNotification parses a bucket notification. AWS and MinIO both deliver
// the S3 event layout, MinIO wrapping it with extra top-level fields.
func DecodeNotification(data []byte) (events.S3Event, error) {
	var evt events.S3Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return events.S3Event{}, fmt.Errorf("decode notification: %w", err)
	}
	return evt, nil
}

// NotificationHandler processes one notification. A non-nil reply is sent
// back when the message was a request.
type NotificationHandler func(ctx context.Context, evt events.S3Event) (reply any, err error)

// SubscribeNotifications joins queue on subject so that each notification is
// handled by exactly one subscriber of the group.
func (c *Client) SubscribeNotifications(subject, queue string, timeout time.Duration, handler NotificationHandler) (*nats.Subscription, error) {
	return c.nc.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		evt, err := DecodeNotification(msg.Data)
		if err != nil {
			slog.Error("drop malformed notification", "subject", msg.Subject, "err", err)
			c.respond(msg, errorReply{Error: err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := handler(ctx, evt)
		if err != nil {
			c.respond(msg, errorReply{Error: err.Error()})
			return
		}
		c.respond(msg, reply)
	})
}

type errorReply struct {
	Error string `json:"error"`
}

func (c *Client) respond(msg *nats.Msg, v any) {
	if msg.Reply == "" || v == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode reply failed", "subject", msg.Subject, "err", err)
		return
	}
	if err := msg.Respond(b); err != nil {
		slog.Error("send reply failed", "subject", msg.Subject, "err", err)
	}
}

// DonePublisher publishes outcome events to a fixed subject.
type DonePublisher struct {
	client  *Client
	subject string
}

func NewDonePublisher(client *Client, subject string) *DonePublisher {
	return &DonePublisher{client: client, subject: subject}
}

func (p *DonePublisher) PublishDone(ctx context.Context, done schema.ThumbnailDone) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.client.PublishJSON(p.subject, done)
}
