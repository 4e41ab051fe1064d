package services

import (
	"testing"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyIDCreates(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	conv, err := svc.Resolve("u1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "u1", conv.UserID)
	assert.Equal(t, "New Conversation", conv.Title)
}

func TestResolveExisting(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	created, err := svc.Create("u1", "Morning check-in")
	require.NoError(t, err)

	conv, err := svc.Resolve("u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, conv.ID)
	assert.Equal(t, "Morning check-in", conv.Title)
}

func TestResolveUnknownOrForeign(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	_, err := svc.Resolve("u1", "does-not-exist")
	assert.ErrorIs(t, err, ErrValidation)

	owned, err := svc.Create("owner", "")
	require.NoError(t, err)
	_, err = svc.Resolve("intruder", owned.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHistoryOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)

	conv, err := svc.Create("u1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Append(conv.ID, "u1", models.RoleUser, "one", ""))
	require.NoError(t, svc.Append(conv.ID, "u1", models.RoleAssistant, "two", `{"toolResults":[]}`))
	require.NoError(t, svc.Append(conv.ID, "u1", models.RoleUser, "three", ""))

	msgs, err := svc.History(conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "two", msgs[1].Content)
	assert.Equal(t, "three", msgs[2].Content)
	assert.Equal(t, `{"toolResults":[]}`, msgs[1].StructuredJSON)
}
