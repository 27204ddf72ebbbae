package emotion

import (
	"math"
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
)

// MaxConfidence caps any adjusted confidence
const MaxConfidence = 95.0

// UnchangedReason is reported when no rule applies
const UnchangedReason = "context did not change the interpretation"

// Rule reinterprets one emotion inside one scene context
type Rule struct {
	Name     string
	Context  string
	Emotion  string
	Adjusted string
	Boost    float64
	Reason   string
}

// DefaultRules are checked in order; the first match wins
var DefaultRules = []Rule{
	{
		Name:     "office_sad_focused",
		Context:  model.ContextOffice,
		Emotion:  "sad",
		Adjusted: "focused",
		Boost:    10,
		Reason:   "in a work setting a serious expression is often concentration",
	},
	{
		Name:     "party_angry_excited",
		Context:  model.ContextParty,
		Emotion:  "angry",
		Adjusted: "excited",
		Boost:    5,
		Reason:   "at a party an intense expression can mean excitement",
	},
	{
		Name:     "nature_neutral_pensive",
		Context:  model.ContextNature,
		Emotion:  "neutral",
		Adjusted: "pensive",
		Boost:    8,
		Reason:   "in natural surroundings a neutral face can reflect contemplation",
	},
}

// Adjust applies DefaultRules
func Adjust(emotion string, confidence float64, context []string) model.EmotionAdjustment {
	return AdjustWith(DefaultRules, emotion, confidence, context)
}

// AdjustWith applies the first rule whose context is present and whose
// emotion matches. Emotion names compare case-insensitively.
func AdjustWith(rules []Rule, emotion string, confidence float64, context []string) model.EmotionAdjustment {
	out := model.EmotionAdjustment{
		OriginalEmotion:    emotion,
		OriginalConfidence: confidence,
		AdjustedEmotion:    emotion,
		AdjustedConfidence: confidence,
		Reason:             UnchangedReason,
		Context:            append([]string{}, context...),
	}

	normalized := strings.ToLower(strings.TrimSpace(emotion))
	for _, r := range rules {
		if r.Emotion != normalized || !hasContext(context, r.Context) {
			continue
		}
		out.AdjustedEmotion = r.Adjusted
		out.AdjustedConfidence = math.Min(MaxConfidence, confidence+r.Boost)
		out.Reason = r.Reason
		out.Rule = r.Name
		break
	}
	return out
}

func hasContext(context []string, want string) bool {
	for _, c := range context {
		if strings.EqualFold(strings.TrimSpace(c), want) {
			return true
		}
	}
	return false
}
