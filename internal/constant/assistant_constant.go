package constant

const (
	// AIModel is the fixed generation model identifier.
	AIModel = "gemini-2.5-flash"

	// NotFoundMessage is the exact string the model is instructed to return
	// when the knowledge base holds no grounded answer. Callers distinguish
	// "no answer" from a transport failure by comparing against this value.
	NotFoundMessage = "提供された情報の中には、該当する回答が見つかりませんでした。"

	// GenericErrorMessage replaces the answer when the main generation call fails.
	GenericErrorMessage = "申し訳ありませんが、回答を生成中にエラーが発生しました。"

	// APIKeyErrorMessage replaces the answer when the failure points at a
	// misconfigured credential.
	APIKeyErrorMessage = "APIキーの設定に問題があるようです。アプリケーションの管理者にお問い合わせください。"
)

const (
	GranularityConcise    = "concise"
	GranularityContextual = "contextual"
	GranularityDetailed   = "detailed"

	DefaultGranularity = GranularityContextual
)

// Schema item descriptions sent with the structured (JSON array) requests.
const (
	InsightItemDescription    = "ユーザーが次に関心を持つ可能性のある、推測された具体的な視点や問い"
	SuggestionItemDescription = "回答内容を深掘りする、または関連する別のトピックに繋がるような、ユーザーが次に尋ねる可能性のある質問"
)

const (
	// MaxSuggestedQuestions caps the follow-up question list regardless of
	// how many items the model returns.
	MaxSuggestedQuestions = 4

	// Character budgets applied to the already-produced answer before it is
	// embedded into a secondary prompt, to bound prompt size.
	InsightAnswerBudget      = 1000
	SuggestionsAnswerBudget  = 1500
	SuggestionsContextBudget = 2000
)
