package queue

import (
	"context"
	"encoding/json"
)

type message struct {
	key   string
	value []byte
}

// Memory is a channel-backed queue implementing both Producer and Consumer.
// It backs tests and single-process development runs.
type Memory struct {
	ch chan message
}

func NewMemory(size int) *Memory {
	if size <= 0 {
		size = 256
	}
	return &Memory{ch: make(chan message, size)}
}

func (m *Memory) Enqueue(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case m.ch <- message{key: key, value: b}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue blocks for the next payload.
func (m *Memory) Dequeue(ctx context.Context) (string, []byte, error) {
	select {
	case msg := <-m.ch:
		return msg.key, msg.value, nil
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}

// Len reports how many payloads are waiting.
func (m *Memory) Len() int { return len(m.ch) }

// Run delivers each payload once, matching the Kafka consumer: a handler
// error drops the job rather than requeueing it.
func (m *Memory) Run(ctx context.Context, h HandlerFunc) error {
	for {
		key, value, err := m.Dequeue(ctx)
		if err != nil {
			return err
		}
		_ = h(ctx, key, value)
	}
}

func (m *Memory) Close() error { return nil }
