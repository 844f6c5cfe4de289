// Package hooks is a worked Hooks implementation that publishes two
// messages per root mutation field, a "start" event from MutationStart
// and an "end" event from MutationEnd, to a gocloud.dev/pubsub topic,
// demonstrating the MutationStart/MutationEnd pairing guarantee
// (spec.md §3 Context/Hooks protocol).
package hooks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"

	"github.com/arcweave/graphql"
	gqerrors "github.com/arcweave/graphql/errors"
)

// PubsubHooks embeds graphql.BaseHooks so it only needs to override the
// callbacks it cares about: mutation lifecycle and exception rendering.
type PubsubHooks struct {
	graphql.BaseHooks
	Topic *pubsub.Topic
}

// NewPubsubHooks opens the pubsub topic at topicURL (for example an
// in-memory "mem://" topic) and returns Hooks that publish a JSON event
// to it at the start and at the end of every root mutation field.
func NewPubsubHooks(ctx context.Context, topicURL string) (*PubsubHooks, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, err
	}
	return &PubsubHooks{Topic: topic}, nil
}

type mutationEvent struct {
	Field     string                 `json:"field"`
	Phase     string                 `json:"phase"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
	Result    interface{}            `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (h *PubsubHooks) publish(ctx context.Context, evt mutationEvent) {
	body, err := json.Marshal(evt)
	if err != nil {
		log.Printf("graphql: hooks: failed to marshal mutation event: %v", err)
		return
	}
	if err := h.Topic.Send(ctx, &pubsub.Message{Body: body}); err != nil {
		log.Printf("graphql: hooks: failed to publish mutation event: %v", err)
	}
}

func (h *PubsubHooks) MutationStart(ctx context.Context, fieldName string, arguments map[string]interface{}) {
	h.publish(ctx, mutationEvent{Field: fieldName, Phase: "start", Arguments: arguments})
}

func (h *PubsubHooks) MutationEnd(ctx context.Context, fieldName string, arguments map[string]interface{}, result interface{}, err error) {
	evt := mutationEvent{Field: fieldName, Phase: "end", Arguments: arguments, Result: result}
	if err != nil {
		evt.Error = err.Error()
	}
	h.publish(ctx, evt)
}

func (h *PubsubHooks) ExceptionErrors(_ context.Context, err error) []*gqerrors.GraphQLError {
	return []*gqerrors.GraphQLError{gqerrors.New(gqerrors.KindResolver, "internal error: %s", err)}
}

// Close releases the underlying topic.
func (h *PubsubHooks) Close(ctx context.Context) error {
	return h.Topic.Shutdown(ctx)
}
