package dto

type SynthesizeRequest struct {
	Text         string `json:"text" validate:"required"`
	LanguageCode string `json:"language_code" validate:"required"`
}

// Voice ask outcome codes for the three-way transcription result.
const (
	VoiceOutcomeRecognized    = "recognized"
	VoiceOutcomeNotUnderstood = "not_understood"
	VoiceOutcomeServiceError  = "service_error"
)

type VoiceAskResponse struct {
	Outcome        string `json:"outcome"`
	RecognizedText string `json:"recognized_text,omitempty"`
	// Set only when Outcome is "recognized".
	Answer *AskResponse `json:"answer,omitempty"`
	// Base64 MP3 of the spoken answer, when synthesis succeeded.
	AnswerAudio string `json:"answer_audio,omitempty"`
	Message     string `json:"message,omitempty"`
}
