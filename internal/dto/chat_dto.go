package dto

type CreateSessionRequest struct {
	Language   string `json:"language"` // display name, e.g. "Spanish"
	DocumentId string `json:"document_id" validate:"required"`
}

type CreateSessionResponse struct {
	SessionId    string `json:"session_id"`
	LanguageCode string `json:"language_code"`
	DocumentId   string `json:"document_id"`
}

type AskRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Query     string `json:"query" validate:"required"`
}

type AskResponse struct {
	SessionId        string `json:"session_id"`
	Query            string `json:"query"`
	TranslatedAnswer string `json:"translated_answer"`
	RawAnswer        string `json:"raw_answer"`
	ContextText      string `json:"context_text,omitempty"`
}

type HistoryTurn struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

type GetHistoryResponse struct {
	SessionId string        `json:"session_id"`
	Turns     []HistoryTurn `json:"turns"`
}

type LanguageOptionsResponse struct {
	Options []LanguageOption `json:"options"`
}

type LanguageOption struct {
	DisplayName string `json:"display_name"`
	Code        string `json:"code"`
}
