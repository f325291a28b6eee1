package dto

import "time"

type SearchRequest struct {
	SessionId string `json:"session_id,omitempty"`
	UserInput string `json:"user_input" validate:"required"`
	TopK      int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=50"`
}

type SearchResultDTO struct {
	Id      string  `json:"id"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
	Snippet string  `json:"snippet"`
	Doc     string  `json:"doc,omitempty"`
}

type SearchResponse struct {
	SessionId string            `json:"session_id"`
	Results   []SearchResultDTO `json:"results"`
}

type ExplainRequest struct {
	SessionId string `json:"session_id,omitempty"`
	UserInput string `json:"user_input" validate:"required"`
}

type ExplainResponse struct {
	SessionId   string `json:"session_id"`
	FunctionId  string `json:"function_id"`
	Explanation string `json:"explanation"`
	Degraded    bool   `json:"degraded,omitempty"`
}

// ChatRequest is the combined conversational entrypoint: intent is classified
// server-side and the reply shape depends on what the classifier decided.
type ChatRequest struct {
	SessionId string `json:"session_id,omitempty"`
	UserInput string `json:"user_input" validate:"required"`
}

type ChatResponse struct {
	SessionId   string            `json:"session_id"`
	Intent      string            `json:"intent"`
	Reply       string            `json:"reply,omitempty"`
	Results     []SearchResultDTO `json:"results,omitempty"`
	FunctionId  string            `json:"function_id,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
}

type TurnDTO struct {
	Utterance string    `json:"utterance"`
	Intent    string    `json:"intent"`
	ResultRef []string  `json:"result_ref,omitempty"`
	At        time.Time `json:"at"`
}

type HistoryResponse struct {
	SessionId    string    `json:"session_id"`
	Turns        []TurnDTO `json:"turns"`
	LastResults  []string  `json:"last_results,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}
