package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/matching"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/logger"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed startup_prompt.md
var startupPrompt string

//go:embed investor_prompt.md
var investorPrompt string

const maxLogLength = 200

// DeckAnalyzer turns extracted deck text into profile fields through an LLM.
type DeckAnalyzer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewDeckAnalyzer(generator contentGenerator, log *zap.Logger) *DeckAnalyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeckAnalyzer{generator: generator, logger: log}
}

func (a *DeckAnalyzer) AnalyzeStartupDeck(ctx context.Context, fileName, content string) (startup.Analysis, error) {
	data, err := a.run(ctx, startupPrompt, fileName, content)
	if err != nil {
		return startup.Analysis{}, err
	}

	out := startup.Analysis{
		CompanyName:  coerceString(data["company_name"]),
		Industry:     coerceString(data["industry"]),
		Stage:        coerceString(data["stage"]),
		Headquarters: coerceString(data["headquarters"]),
		FundingAsk:   coerceString(data["funding_ask"]),
	}
	if ra, ok := data["readiness_assessment"].(map[string]any); ok {
		if v := coerceFloat(ra["overall_score"]); !math.IsNaN(v) {
			v = math.Max(0, math.Min(100, v))
			out.ReadinessScore = &v
		}
	}
	return out, nil
}

func (a *DeckAnalyzer) AnalyzeInvestorDeck(ctx context.Context, fileName, content string) (investor.Analysis, error) {
	data, err := a.run(ctx, investorPrompt, fileName, content)
	if err != nil {
		return investor.Analysis{}, err
	}

	out := investor.Analysis{
		OrganizationName: coerceString(data["fund_name"]),
		FocusSectors:     coerceStrings(data["sector_focus"]),
		FocusStages:      coerceStrings(data["stage_focus"]),
		GeographyFocus:   coerceStrings(data["geography_focus"]),
	}
	if out.OrganizationName == nil {
		out.OrganizationName = coerceString(data["investor_name"])
	}
	if ticket := coerceString(data["average_ticket"]); ticket != nil {
		out.TicketSizeMin, out.TicketSizeMax = matching.ParseAmountRange(*ticket)
	}
	return out, nil
}

func (a *DeckAnalyzer) run(ctx context.Context, template, fileName, content string) (map[string]any, error) {
	if a == nil || a.generator == nil {
		return nil, fmt.Errorf("deck analyzer is not configured")
	}

	prompt := strings.ReplaceAll(template, "{{FILE_NAME}}", strings.TrimSpace(fileName))
	prompt = strings.ReplaceAll(prompt, "{{CONTENT}}", content)

	a.logger.Debug("deck analysis request",
		zap.String("file_name", fileName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("deck analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, maxLogLength)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return data, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func coerceString(v any) *string {
	var s string
	switch val := v.(type) {
	case string:
		s = strings.TrimSpace(val)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return nil
	}
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
		return nil
	}
	return &s
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != nil {
				out = append(out, *s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(val, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(val), "%"), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
