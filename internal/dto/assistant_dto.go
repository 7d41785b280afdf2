package dto

type AskRequest struct {
	Query       string `json:"query" validate:"required"`
	Granularity string `json:"granularity,omitempty" validate:"omitempty,oneof=concise contextual detailed"`
}

type SetGranularityRequest struct {
	Granularity string `json:"granularity" validate:"required,oneof=concise contextual detailed"`
}

type SetQueryTextRequest struct {
	Query string `json:"query"`
}

// SessionStateResponse mirrors the orchestrator session record. Answer is a
// pointer and insight_hints a nilable slice because JSON null ("not yet
// produced" / "feature absent") is distinct from an empty value here:
// null hides the panel, [] renders an empty one.
type SessionStateResponse struct {
	CurrentQueryText  string   `json:"current_query_text"`
	SearchedQuestion  *string  `json:"searched_question"`
	Answer            *string  `json:"answer"`
	InsightHints      []string `json:"insight_hints"`
	FollowUpQuestions []string `json:"follow_up_questions"`

	MainRequestInFlight        bool `json:"main_request_in_flight"`
	InsightRequestInFlight     bool `json:"insight_request_in_flight"`
	SuggestionsRequestInFlight bool `json:"suggestions_request_in_flight"`

	Granularity string `json:"granularity"`
}

type FAQItemResponse struct {
	Id          string `json:"id"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category,omitempty"`
	Question    string `json:"question"`
}

type FAQMatchResponse struct {
	Item  *FAQItemDetailResponse `json:"item"`
	Score int                    `json:"score"`
}

type FAQItemDetailResponse struct {
	Id          string `json:"id"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category,omitempty"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}
