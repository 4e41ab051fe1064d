package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Talhaahmd/OptimizedTrainerAI/models"
)

// ChatService runs one conversational turn: context snapshot, a single
// inference call with the tool catalog attached, deterministic execution of
// whatever the model requested, then persistence and the consolidated
// response. Steps are strictly sequential; there is no second inference
// round after tools run.
type ChatService struct {
	convos   *ConversationService
	contexts *ContextService
	registry *ToolRegistry
	stats    *StatsService
	profiles *ProfileService
	audit    *AuditService
	ai       AIClient
	hub      *RealtimeHub // optional
}

func NewChatService(
	convos *ConversationService,
	contexts *ContextService,
	registry *ToolRegistry,
	stats *StatsService,
	profiles *ProfileService,
	audit *AuditService,
	ai AIClient,
	hub *RealtimeHub,
) *ChatService {
	return &ChatService{
		convos:   convos,
		contexts: contexts,
		registry: registry,
		stats:    stats,
		profiles: profiles,
		audit:    audit,
		ai:       ai,
		hub:      hub,
	}
}

type TodaySummary struct {
	Steps      int     `json:"steps"`
	SleepHours float64 `json:"sleep_hours"`
}

type ChartData struct {
	Labels []string  `json:"labels"`
	Steps  []int     `json:"steps"`
	Sleep  []float64 `json:"sleep"`
}

// TurnResult is the consolidated payload one turn returns to the client.
type TurnResult struct {
	ConversationID string            `json:"conversation_id"`
	AssistantText  string            `json:"assistantText"`
	TodaySummary   TodaySummary      `json:"todaySummary"`
	Targets        *models.TargetSet `json:"targets"`
	ChartData      ChartData         `json:"chartData"`
	ToolResults    []ToolOutcome     `json:"toolResults"`
}

func (s *ChatService) StartConversation(userID string) (*models.Conversation, error) {
	return s.convos.Create(userID, "")
}

// Message runs one turn. The user message is appended before the inference
// call, so a failed call leaves it persisted and the client only has to
// retry the turn, never re-send history. A failed inference call is fatal to
// the turn; a failed individual tool call is not.
func (s *ChatService) Message(ctx context.Context, userID, conversationID, message string) (*TurnResult, error) {
	// received
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message must be non-empty", ErrValidation)
	}
	conv, err := s.convos.Resolve(userID, conversationID)
	if err != nil {
		return nil, err
	}

	// context_built: absent data becomes nulls, never a failed turn
	snap := s.contexts.Snapshot(userID)
	contextJSON, err := json.Marshal(snap)
	if err != nil {
		contextJSON = []byte("{}")
	}

	msgs, err := s.convos.History(conv.ID)
	if err != nil {
		return nil, err
	}
	history := make([]ChatTurn, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, ChatTurn{Role: m.Role, Content: m.Content})
	}

	if err := s.convos.Append(conv.ID, userID, models.RoleUser, message, ""); err != nil {
		return nil, err
	}

	// model_invoked: exactly one call per turn
	reply, err := s.ai.Chat(ctx, string(contextJSON), history, message, s.registry.Definitions())
	if err != nil {
		return nil, errors.Join(ErrUpstreamUnavailable, err)
	}

	// tools_applied: in the order the model returned them, each independent
	outcomes := make([]ToolOutcome, 0, len(reply.ToolCalls))
	for _, call := range reply.ToolCalls {
		outcomes = append(outcomes, s.registry.Dispatch(userID, call))
	}

	s.audit.Record(userID, "chat_turn",
		map[string]interface{}{"conversation_id": conv.ID, "message": message},
		reply)

	// persisted: assistant after tool effects, so replay reads cause→effect
	structured := ""
	if b, err := json.Marshal(map[string]interface{}{"toolResults": outcomes}); err == nil {
		structured = string(b)
	}
	if err := s.convos.Append(conv.ID, userID, models.RoleAssistant, reply.Content, structured); err != nil {
		return nil, err
	}

	// responded: re-read post-mutation state
	result := &TurnResult{
		ConversationID: conv.ID,
		AssistantText:  reply.Content,
		ToolResults:    outcomes,
	}
	if today, err := s.stats.Today(userID); err == nil {
		result.TodaySummary = TodaySummary{Steps: today.Steps, SleepHours: today.SleepHours}
	}
	if targets, err := s.profiles.LatestTargets(userID); err == nil {
		result.Targets = targets
	}
	if recent, err := s.stats.Recent(userID, contextWindowDays); err == nil {
		result.ChartData = chartFromStats(recent)
	}

	if s.hub != nil && anyMutated(outcomes) {
		s.hub.Broadcast(userID, map[string]interface{}{
			"kind":    "summary.updated",
			"summary": result.TodaySummary,
			"targets": result.Targets,
		})
	}

	return result, nil
}

// chartFromStats reverses a newest-first window into chronological series.
func chartFromStats(rows []models.DailyStat) ChartData {
	cd := ChartData{
		Labels: make([]string, 0, len(rows)),
		Steps:  make([]int, 0, len(rows)),
		Sleep:  make([]float64, 0, len(rows)),
	}
	for i := len(rows) - 1; i >= 0; i-- {
		cd.Labels = append(cd.Labels, rows[i].DateKey)
		cd.Steps = append(cd.Steps, rows[i].Steps)
		cd.Sleep = append(cd.Sleep, rows[i].SleepHours)
	}
	return cd
}

func anyMutated(outcomes []ToolOutcome) bool {
	for _, o := range outcomes {
		if o.Mutated() {
			return true
		}
	}
	return false
}
