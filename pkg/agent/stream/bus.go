package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus is the in-process event bus between a running graph and its SSE
// subscribers, one topic per run.
type Bus struct {
	pubSub *gochannel.GoChannel
}

var _ Sink = &Bus{}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

func runTopic(runId string) string {
	return fmt.Sprintf("agent.run.%s", runId)
}

// Emit publishes the event to the run's topic. Non-forwardable events are
// dropped here so subscribers only ever see the public protocol.
func (b *Bus) Emit(ctx context.Context, ev Event) error {
	if !Forwardable(ev.Type) {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.pubSub.Publish(runTopic(ev.RunId), msg)
}

// Subscribe returns the event stream for a run. The channel closes when the
// context is cancelled or the bus shuts down.
func (b *Bus) Subscribe(ctx context.Context, runId string) (<-chan Event, error) {
	messages, err := b.pubSub.Subscribe(ctx, runTopic(runId))
	if err != nil {
		return nil, fmt.Errorf("subscribe to run %s: %w", runId, err)
	}

	events := make(chan Event, 64)
	go func() {
		defer close(events)
		for msg := range messages {
			var ev Event
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				msg.Nack()
				continue
			}
			msg.Ack()
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
