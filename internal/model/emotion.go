package model

// Scene context labels produced by the image context detector
const (
	ContextOffice    = "office"
	ContextNature    = "nature"
	ContextParty     = "party"
	ContextUndefined = "undefined"
)

// EmotionAdjustment is the result of reinterpreting a facial emotion in context
type EmotionAdjustment struct {
	OriginalEmotion    string   `json:"original_emotion"`
	OriginalConfidence float64  `json:"original_confidence"`
	AdjustedEmotion    string   `json:"adjusted_emotion"`
	AdjustedConfidence float64  `json:"adjusted_confidence"`
	Reason             string   `json:"reason"`
	Context            []string `json:"context"`
	Rule               string   `json:"rule,omitempty"` // Name of the rule that fired, empty if none
}
