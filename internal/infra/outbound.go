// README: Redis-backed outbound SMS/email queues consumed by the messaging workers.
package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	smsQueueKey   = "outbound:sms"
	emailQueueKey = "outbound:email"
)

// OutboundQueue pushes notification jobs onto Redis lists. Delivery is
// fire-and-forget from the caller's point of view; the messaging workers own
// retries and provider errors.
type OutboundQueue struct {
	redis *redis.Client
}

func NewOutboundQueue(r *redis.Client) *OutboundQueue {
	return &OutboundQueue{redis: r}
}

type smsJob struct {
	To       string `json:"to"`
	Body     string `json:"body"`
	QueuedAt int64  `json:"queued_at"`
}

type emailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	QueuedAt int64  `json:"queued_at"`
}

func (q *OutboundQueue) EnqueueSMS(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(smsJob{To: to, Body: body, QueuedAt: time.Now().Unix()})
	if err != nil {
		return err
	}
	return q.redis.LPush(ctx, smsQueueKey, payload).Err()
}

func (q *OutboundQueue) EnqueueEmail(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(emailJob{To: to, Subject: subject, Body: body, QueuedAt: time.Now().Unix()})
	if err != nil {
		return err
	}
	return q.redis.LPush(ctx, emailQueueKey, payload).Err()
}
