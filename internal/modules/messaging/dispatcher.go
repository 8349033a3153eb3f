package messaging

import (
	"context"
	"log"
	"time"
)

// Dispatcher drains due queued messages in batches. One failing message never
// blocks the rest of the batch.
type Dispatcher struct {
	messages  messageRepo
	provider  Provider
	batchSize int
	loggerf   func(format string, args ...any)
}

func NewDispatcher(messages messageRepo, provider Provider, batchSize int, loggerf func(format string, args ...any)) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 25
	}
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &Dispatcher{
		messages:  messages,
		provider:  provider,
		batchSize: batchSize,
		loggerf:   loggerf,
	}
}

type DispatchResult struct {
	Due    int `json:"due"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// RunOnce processes a single batch of due messages and reports counts.
func (d *Dispatcher) RunOnce(ctx context.Context, now time.Time) (DispatchResult, error) {
	due, err := d.messages.DueMessages(ctx, now, d.batchSize)
	if err != nil {
		return DispatchResult{}, err
	}

	res := DispatchResult{Due: len(due)}
	for _, m := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := d.provider.Send(ctx, m.ID); err != nil {
			d.loggerf("level=warn msg=message dispatch failed message_id=%d err=%v", m.ID, err)
			res.Failed++
			continue
		}
		res.Sent++
	}
	return res, nil
}

// Run loops RunOnce on the given interval until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := d.RunOnce(ctx, time.Now())
			if err != nil {
				d.loggerf("level=error msg=dispatch pass failed err=%v", err)
				continue
			}
			if res.Due > 0 {
				d.loggerf("level=info msg=dispatch pass due=%d sent=%d failed=%d", res.Due, res.Sent, res.Failed)
			}
		}
	}
}
