package hooks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"

	"github.com/arcweave/graphql"
	gqerrors "github.com/arcweave/graphql/errors"
	"github.com/arcweave/graphql/example/starwars"
)

func TestPubsubHooksPublishesMutationLifecycleEvents(t *testing.T) {
	ctx := context.Background()

	h, err := NewPubsubHooks(ctx, "mem://starwars-mutations-test")
	require.NoError(t, err)
	defer h.Close(ctx)

	sub, err := pubsub.OpenSubscription(ctx, "mem://starwars-mutations-test")
	require.NoError(t, err)
	defer sub.Shutdown(ctx)

	schema, err := starwars.NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(ctx, `mutation { addFriend(humanId: "1000", friendId: "1001") { id } }`, schema, h, nil, nil, "")
	require.Empty(t, resp.Errors)

	var phases []string
	for i := 0; i < 2; i++ {
		rctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		msg, err := sub.Receive(rctx)
		cancel()
		require.NoError(t, err)
		msg.Ack()

		var evt mutationEvent
		require.NoError(t, json.Unmarshal(msg.Body, &evt))
		assert.Equal(t, "addFriend", evt.Field)
		phases = append(phases, evt.Phase)
	}
	assert.Equal(t, []string{"start", "end"}, phases)
}

func TestExceptionErrorsWrapsAsResolverKind(t *testing.T) {
	h := &PubsubHooks{}
	records := h.ExceptionErrors(context.Background(), assert.AnError)
	require.Len(t, records, 1)
	assert.Equal(t, gqerrors.KindResolver, records[0].Kind)
	assert.Contains(t, records[0].Error(), assert.AnError.Error())
}
