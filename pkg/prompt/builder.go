package prompt

import (
	"fmt"
	"strings"

	"github.com/yamanekazuki/hr-qa-assistant/internal/constant"
)

// BuildMainInstruction assembles the system instruction for the main answer
// request: grounding directive, granularity clause, markdown rulebook and the
// full serialized knowledge base. Pure function, deterministic for identical
// inputs.
func BuildMainInstruction(granularity string, knowledgeContext string) string {
	var granularityInstruction string
	switch granularity {
	case constant.GranularityConcise:
		granularityInstruction = constant.GranularityConciseInstruction
	case constant.GranularityDetailed:
		granularityInstruction = constant.GranularityDetailedInstruction
	default:
		granularityInstruction = constant.GranularityContextualInstruction
	}

	base := fmt.Sprintf(constant.SystemInstructionBase, constant.NotFoundMessage)
	rules := strings.Replace(constant.MarkdownFormattingRules, "{GRANULARITY_INSTRUCTION}", granularityInstruction, 1)

	return base + "\n\n" + rules + "\n\n提供されたナレッジベース：\n" + knowledgeContext
}

// BuildInsightPrompt builds the "next interest" derivation prompt. The answer
// is truncated to a fixed character budget before embedding.
func BuildInsightPrompt(query, answer string) string {
	return fmt.Sprintf(constant.InsightPromptTemplate,
		query,
		truncateRunes(answer, constant.InsightAnswerBudget),
	)
}

// BuildSuggestionsPrompt builds the follow-up question derivation prompt.
// Both the answer and the knowledge context are truncated to fixed budgets.
func BuildSuggestionsPrompt(query, answer, knowledgeContext string) string {
	return fmt.Sprintf(constant.SuggestionsPromptTemplate,
		query,
		truncateRunes(answer, constant.SuggestionsAnswerBudget),
		truncateRunes(knowledgeContext, constant.SuggestionsContextBudget),
	)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
