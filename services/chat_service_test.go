package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestChat(t *testing.T, ai AIClient) (*ChatService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	stats := newTestStats(db)
	profiles := NewProfileService(db)
	audit := NewAuditService(db)
	meals := NewMealService(db, ai, audit)
	convos := NewConversationService(db)
	contexts := NewContextService(db, profiles, stats)
	registry := NewToolRegistry(stats, meals)
	return NewChatService(convos, contexts, registry, stats, profiles, audit, ai, nil), db
}

func TestMessageExecutesToolCallsInOrder(t *testing.T) {
	ai := &fakeAIClient{reply: &ChatReply{
		Content: "Logged your steps and sleep. Nice consistency!",
		ToolCalls: []ToolInvocation{
			{ID: "call_1", Name: ToolLogSteps, Arguments: `{"steps": 9000}`},
			{ID: "call_2", Name: ToolLogSleep, Arguments: `{"hours": 7}`},
		},
	}}
	svc, db := newTestChat(t, ai)

	res, err := svc.Message(context.Background(), "u1", "", "walked 9k steps, slept 7h")
	require.NoError(t, err)

	require.Len(t, res.ToolResults, 2)
	assert.Equal(t, ToolLogSteps, res.ToolResults[0].Tool)
	assert.Equal(t, ToolLogSleep, res.ToolResults[1].Tool)
	assert.True(t, res.ToolResults[0].OK)
	assert.True(t, res.ToolResults[1].OK)

	// one inference round only, no loop back after tool execution
	assert.Equal(t, 1, ai.chatCalls)

	// effects landed on today's row and surface in the consolidated payload
	assert.Equal(t, 9000, res.TodaySummary.Steps)
	assert.Equal(t, 7.0, res.TodaySummary.SleepHours)

	// both messages persisted: user first, assistant after tool effects
	var msgs []models.ConversationMessage
	require.NoError(t, db.Order("id ASC").Find(&msgs).Error)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "walked 9k steps, slept 7h", msgs[0].Content)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)

	var structured map[string][]ToolOutcome
	require.NoError(t, json.Unmarshal([]byte(msgs[1].StructuredJSON), &structured))
	assert.Len(t, structured["toolResults"], 2)

	// the turn is audited
	var audits int64
	require.NoError(t, db.Model(&models.AIAuditLog{}).
		Where("event_type = ?", "chat_turn").Count(&audits).Error)
	assert.Equal(t, int64(1), audits)
}

func TestMessageInferenceFailureKeepsUserMessage(t *testing.T) {
	ai := &fakeAIClient{chatErr: errors.New("upstream 503")}
	svc, db := newTestChat(t, ai)

	conv, err := svc.StartConversation("u1")
	require.NoError(t, err)

	_, err = svc.Message(context.Background(), "u1", conv.ID, "hello?")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	// the user message survives the failed call; no assistant message exists
	var msgs []models.ConversationMessage
	require.NoError(t, db.Where("conversation_id = ?", conv.ID).Order("id ASC").Find(&msgs).Error)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello?", msgs[0].Content)
}

func TestMessageBadToolArgumentDegrades(t *testing.T) {
	ai := &fakeAIClient{reply: &ChatReply{
		Content: "Got it.",
		ToolCalls: []ToolInvocation{
			{ID: "call_1", Name: ToolLogSleep, Arguments: `{"hours": 99}`},
			{ID: "call_2", Name: ToolLogSteps, Arguments: `{"steps": 4000}`},
		},
	}}
	svc, db := newTestChat(t, ai)

	res, err := svc.Message(context.Background(), "u1", "", "slept 99 hours and walked")
	require.NoError(t, err, "a rejected tool call must not fail the turn")

	require.Len(t, res.ToolResults, 2)
	assert.False(t, res.ToolResults[0].OK)
	assert.NotEmpty(t, res.ToolResults[0].Error)
	assert.True(t, res.ToolResults[1].OK, "later calls still run")

	var stat models.DailyStat
	require.NoError(t, db.First(&stat, "user_id = ?", "u1").Error)
	assert.Equal(t, 4000, stat.Steps)
	assert.Zero(t, stat.SleepHours)
}

func TestMessageValidation(t *testing.T) {
	svc, db := newTestChat(t, &fakeAIClient{reply: &ChatReply{Content: "hi"}})

	_, err := svc.Message(context.Background(), "u1", "", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Message(context.Background(), "u1", "no-such-conversation", "hi")
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.ConversationMessage{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "rejected turns persist nothing")
}

func TestMessageForeignConversationRefused(t *testing.T) {
	svc, _ := newTestChat(t, &fakeAIClient{reply: &ChatReply{Content: "hi"}})

	conv, err := svc.StartConversation("owner")
	require.NoError(t, err)

	_, err = svc.Message(context.Background(), "intruder", conv.ID, "hi")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMessageHistoryAccumulates(t *testing.T) {
	ai := &fakeAIClient{reply: &ChatReply{Content: "First answer."}}
	svc, _ := newTestChat(t, ai)

	res, err := svc.Message(context.Background(), "u1", "", "first question")
	require.NoError(t, err)
	assert.Empty(t, ai.lastHistory, "first turn starts from empty history")

	ai.reply = &ChatReply{Content: "Second answer."}
	_, err = svc.Message(context.Background(), "u1", res.ConversationID, "second question")
	require.NoError(t, err)

	// prior user and assistant messages arrive oldest-first; the current
	// message travels separately
	require.Len(t, ai.lastHistory, 2)
	assert.Equal(t, "user", ai.lastHistory[0].Role)
	assert.Equal(t, "first question", ai.lastHistory[0].Content)
	assert.Equal(t, "assistant", ai.lastHistory[1].Role)
	assert.Equal(t, "First answer.", ai.lastHistory[1].Content)
	assert.Equal(t, "second question", ai.lastMessage)
}

func TestMessageContextCarriesProfileAndTargets(t *testing.T) {
	ai := &fakeAIClient{reply: &ChatReply{Content: "ok"}}
	svc, db := newTestChat(t, ai)

	p := seedProfile(t, db, "u1")
	_, err := AppendTargets(db, p, nil)
	require.NoError(t, err)

	_, err = svc.Message(context.Background(), "u1", "", "how am I doing?")
	require.NoError(t, err)

	var snap ContextSnapshot
	require.NoError(t, json.Unmarshal([]byte(ai.lastContext), &snap))
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "u1", snap.Profile.UserID)
	require.NotNil(t, snap.Targets)
	assert.Equal(t, 2614, snap.Targets.CaloriesTarget)

	// the full tool catalog is advertised on every turn
	assert.Len(t, ai.lastTools, 5)
}

func TestMessageNewTargetsSurfaceInResult(t *testing.T) {
	ai := &fakeAIClient{reply: &ChatReply{
		Content:   "Weight logged.",
		ToolCalls: []ToolInvocation{{ID: "c1", Name: ToolLogWeight, Arguments: `{"weight_kg": 85}`}},
	}}
	svc, db := newTestChat(t, ai)
	seedProfile(t, db, "u1")

	res, err := svc.Message(context.Background(), "u1", "", "I weigh 85kg now")
	require.NoError(t, err)

	require.NotNil(t, res.Targets, "targets re-derived mid-turn must be in the response")
	assert.Equal(t, 187, res.Targets.ProteinGTarget) // round(85 * 2.2)
}
