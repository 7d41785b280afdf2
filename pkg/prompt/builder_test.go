package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamanekazuki/hr-qa-assistant/internal/constant"
)

func TestBuildMainInstructionEmbedsSentinelOnce(t *testing.T) {
	instruction := BuildMainInstruction(constant.GranularityContextual, "Q: q\nA: a")
	assert.Equal(t, 1, strings.Count(instruction, constant.NotFoundMessage))
}

func TestBuildMainInstructionGranularity(t *testing.T) {
	kb := "Q: 有給休暇\nA: 入社6ヶ月後に付与"

	tests := []struct {
		granularity string
		wantClause  string
	}{
		{constant.GranularityConcise, constant.GranularityConciseInstruction},
		{constant.GranularityContextual, constant.GranularityContextualInstruction},
		{constant.GranularityDetailed, constant.GranularityDetailedInstruction},
		// Unknown values fall back to the default verbosity.
		{"verbose", constant.GranularityContextualInstruction},
		{"", constant.GranularityContextualInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.granularity, func(t *testing.T) {
			instruction := BuildMainInstruction(tt.granularity, kb)
			assert.Contains(t, instruction, tt.wantClause)
			assert.NotContains(t, instruction, "{GRANULARITY_INSTRUCTION}")
			assert.Contains(t, instruction, kb)
		})
	}
}

func TestBuildMainInstructionIncludesFullContext(t *testing.T) {
	kb := strings.Repeat("Q: 質問\nA: 回答\n\n---\n\n", 200)
	instruction := BuildMainInstruction(constant.GranularityDetailed, kb)
	// The main request embeds the knowledge base untruncated.
	assert.Contains(t, instruction, kb)
}

func TestBuildInsightPromptTruncatesAnswer(t *testing.T) {
	longAnswer := strings.Repeat("あ", constant.InsightAnswerBudget+500)
	p := BuildInsightPrompt("有給休暇について", longAnswer)

	assert.Contains(t, p, "有給休暇について")
	assert.Contains(t, p, strings.Repeat("あ", constant.InsightAnswerBudget))
	assert.NotContains(t, p, strings.Repeat("あ", constant.InsightAnswerBudget+1))
}

func TestBuildInsightPromptShortAnswerUntouched(t *testing.T) {
	p := BuildInsightPrompt("質問", "短い回答")
	assert.Contains(t, p, "短い回答")
}

func TestBuildSuggestionsPromptTruncatesBothBudgets(t *testing.T) {
	longAnswer := strings.Repeat("い", constant.SuggestionsAnswerBudget+100)
	longContext := strings.Repeat("う", constant.SuggestionsContextBudget+100)

	p := BuildSuggestionsPrompt("リモートワークは可能ですか", longAnswer, longContext)

	assert.Contains(t, p, "リモートワークは可能ですか")
	assert.Contains(t, p, strings.Repeat("い", constant.SuggestionsAnswerBudget))
	assert.NotContains(t, p, strings.Repeat("い", constant.SuggestionsAnswerBudget+1))
	assert.Contains(t, p, strings.Repeat("う", constant.SuggestionsContextBudget))
	assert.NotContains(t, p, strings.Repeat("う", constant.SuggestionsContextBudget+1))
}

func TestTruncateRunesCountsRunesNotBytes(t *testing.T) {
	// 3-byte runes; a byte-based cut would split a character.
	s := strings.Repeat("漢", 10)
	got := truncateRunes(s, 4)
	assert.Equal(t, "漢漢漢漢", got)
	assert.Equal(t, s, truncateRunes(s, 10))
	assert.Equal(t, s, truncateRunes(s, 100))
}
