package services

import (
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// Tool names advertised to the model. Changing a tool's parameter contract
// means versioning, not editing in place.
const (
	ToolLogSteps     = "log_steps"
	ToolLogSleep     = "log_sleep"
	ToolLogWeight    = "log_weight"
	ToolLogMealItems = "log_meal_items"
	ToolGetSummary   = "get_summary"
)

// ToolOutcome records one attempted tool call, success or not. The full list
// for a turn is stored on the assistant message and returned to the client.
type ToolOutcome struct {
	Tool   string          `json:"tool"`
	Args   json.RawMessage `json:"args,omitempty"`
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	Result interface{}     `json:"result,omitempty"`
}

// Mutated reports whether the call changed stored data.
func (o ToolOutcome) Mutated() bool {
	return o.OK && o.Tool != ToolGetSummary
}

// ToolRegistry is the fixed catalog of actions the model may request. Each
// tool's raw argument payload is parsed into its typed struct and validated
// before any effect; a bad payload skips that call only.
type ToolRegistry struct {
	stats *StatsService
	meals *MealService
}

func NewToolRegistry(stats *StatsService, meals *MealService) *ToolRegistry {
	return &ToolRegistry{stats: stats, meals: meals}
}

// --- typed argument variants ---

type logStepsArgs struct {
	Steps *float64 `json:"steps"`
	Date  string   `json:"date"`
}

func (a *logStepsArgs) validate() error {
	if a.Steps == nil || *a.Steps < 0 {
		return fmt.Errorf("%w: steps is required and must be >= 0", ErrToolArgument)
	}
	return nil
}

type logSleepArgs struct {
	Hours *float64 `json:"hours"`
	Date  string   `json:"date"`
}

func (a *logSleepArgs) validate() error {
	if a.Hours == nil || *a.Hours < 0 || *a.Hours > 24 {
		return fmt.Errorf("%w: hours is required and must be between 0 and 24", ErrToolArgument)
	}
	return nil
}

type logWeightArgs struct {
	WeightKg *float64 `json:"weight_kg"`
	Date     string   `json:"date"`
}

func (a *logWeightArgs) validate() error {
	if a.WeightKg == nil || *a.WeightKg <= 0 {
		return fmt.Errorf("%w: weight_kg is required and must be positive", ErrToolArgument)
	}
	return nil
}

type logMealItemsArgs struct {
	Items []MealItemInput `json:"items"`
	Date  string          `json:"date"`
}

func (a *logMealItemsArgs) validate() error {
	if len(a.Items) == 0 {
		return fmt.Errorf("%w: items must be a non-empty array", ErrToolArgument)
	}
	for i, it := range a.Items {
		if it.Name == "" {
			return fmt.Errorf("%w: items[%d].name is required", ErrToolArgument, i)
		}
		if it.Calories < 0 || it.ProteinG < 0 || it.CarbsG < 0 || it.FatG < 0 {
			return fmt.Errorf("%w: items[%d] nutrition values must be >= 0", ErrToolArgument, i)
		}
	}
	return nil
}

type getSummaryArgs struct {
	RangeDays *float64 `json:"range_days"`
}

func (a *getSummaryArgs) validate() error {
	if a.RangeDays == nil || *a.RangeDays < 1 || *a.RangeDays > 365 {
		return fmt.Errorf("%w: range_days is required and must be between 1 and 365", ErrToolArgument)
	}
	return nil
}

// Dispatch parses, validates and executes one requested tool call. Effects
// are at-least-once and independent per call: a failure here neither rolls
// back earlier calls nor aborts later ones.
func (r *ToolRegistry) Dispatch(userID string, call ToolInvocation) ToolOutcome {
	out := ToolOutcome{Tool: call.Name}
	raw := []byte(call.Arguments)
	if json.Valid(raw) {
		out.Args = json.RawMessage(raw)
	}

	result, err := r.execute(userID, call.Name, raw)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.OK = true
	out.Result = result
	return out
}

func (r *ToolRegistry) execute(userID, name string, raw []byte) (interface{}, error) {
	switch name {
	case ToolLogSteps:
		var args logStepsArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrToolArgument, err)
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		return r.stats.LogSteps(userID, int(*args.Steps), args.Date)

	case ToolLogSleep:
		var args logSleepArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrToolArgument, err)
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		return r.stats.LogSleep(userID, *args.Hours, args.Date)

	case ToolLogWeight:
		var args logWeightArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrToolArgument, err)
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		stat, targets, err := r.stats.LogWeight(userID, *args.WeightKg, args.Date)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"stat": stat, "targets": targets}, nil

	case ToolLogMealItems:
		var args logMealItemsArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrToolArgument, err)
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		dateKey, err := r.stats.ResolveDateKey(args.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrToolArgument, err)
		}
		return r.meals.LogChatMeal(userID, dateKey, args.Items)

	case ToolGetSummary:
		var args getSummaryArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrToolArgument, err)
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		return r.stats.Summary(userID, int(*args.RangeDays))

	default:
		return nil, fmt.Errorf("%w: unknown tool %q", ErrToolArgument, name)
	}
}

// Definitions exports the catalog in the model's function-calling format.
func (r *ToolRegistry) Definitions() []llms.Tool {
	dateProp := map[string]any{
		"type":        "string",
		"description": "YYYY-MM-DD format. Defaults to today.",
	}

	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolLogSteps,
				Description: "Record the number of steps taken for a date.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"steps": map[string]any{"type": "number"},
						"date":  dateProp,
					},
					"required": []string{"steps"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolLogSleep,
				Description: "Record hours of sleep for a date.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"hours": map[string]any{"type": "number"},
						"date":  dateProp,
					},
					"required": []string{"hours"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolLogWeight,
				Description: "Record current body weight.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"weight_kg": map[string]any{"type": "number"},
						"date":      dateProp,
					},
					"required": []string{"weight_kg"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolLogMealItems,
				Description: "Log a meal with its nutritional items. Use this when the user describes what they ate.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"items": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name":      map[string]any{"type": "string"},
									"portion":   map[string]any{"type": "string"},
									"calories":  map[string]any{"type": "number"},
									"protein_g": map[string]any{"type": "number"},
									"carbs_g":   map[string]any{"type": "number"},
									"fat_g":     map[string]any{"type": "number"},
								},
								"required": []string{"name", "portion", "calories", "protein_g", "carbs_g", "fat_g"},
							},
						},
						"date": dateProp,
					},
					"required": []string{"items"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolGetSummary,
				Description: "Retrieve statistical summary and chart data for a date range.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"range_days": map[string]any{
							"type":        "number",
							"description": "Days to look back (7, 14, 30).",
						},
					},
					"required": []string{"range_days"},
				},
			},
		},
	}
}
