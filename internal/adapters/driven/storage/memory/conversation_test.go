package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func TestConversationStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewConversationStore()

	require.NoError(t, store.Append(ctx, domain.NewUserMessage("hello")))
	require.NoError(t, store.Append(ctx, domain.NewAssistantMessage("hi", domain.ProvenanceGeneral, nil)))

	msgs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.Equal(t, 2, store.Len())
}

func TestConversationStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewConversationStore()
	require.NoError(t, store.Append(ctx, domain.NewUserMessage("hello")))

	msgs, err := store.List(ctx)
	require.NoError(t, err)
	msgs[0].Text = "changed"

	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", again[0].Text)
}

func TestConversationStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewConversationStore()
	require.NoError(t, store.Append(ctx, domain.NewUserMessage("hello")))

	require.NoError(t, store.Clear(ctx))

	msgs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
