package respond

import "github.com/mindbridge-care/sentinel/pkg/risk"

// Base intervention messages, keyed by crisis type. Each entry carries
// variants so repeated interventions in one session do not read as canned;
// the Selector decides which variant a given response uses.

var interventionTemplates = map[risk.CrisisType][]string{
	risk.TypeSuicideRisk: {
		"I hear how much pain you are in right now, and I'm glad you told me. " +
			"Your life matters, and these feelings, as overwhelming as they are, can change with help. " +
			"Please stay with me and let's reach out to someone who can support you right now.",
		"Thank you for trusting me with something this heavy. " +
			"What you're feeling is a sign of how much pain you carry, not of what your life is worth. " +
			"You don't have to face this alone, and help is closer than it feels.",
	},
	risk.TypeSelfHarmRisk: {
		"I'm sorry you're hurting enough to turn that pain on yourself. " +
			"You deserve care, not punishment. " +
			"There are safer ways through this moment, and people who want to help you find them.",
		"It takes courage to talk about hurting yourself. " +
			"The urge can feel overpowering, but it passes, and you deserve support while it does. " +
			"Let's find someone who can help you stay safe.",
	},
	risk.TypeSubstanceAbuse: {
		"Struggling with substances doesn't make you weak, and reaching out about it is a strong first step. " +
			"Recovery is possible, and you don't have to manage it alone.",
		"Thank you for being honest about this. " +
			"Addiction is an illness, not a failing, and there are people trained to help you through it.",
	},
}

// genericTemplates back every crisis type without a dedicated entry.
var genericTemplates = []string{
	"I appreciate your courage in sharing these difficult feelings with me. " +
		"I want you to know that you are not alone, and that there are people who care about you and want to help. " +
		"What you are going through right now is hard, but it is temporary and it can be worked through.",
	"These feelings are heavy, and carrying them alone makes them heavier. " +
		"You are not alone in this, and reaching out, like you just did, is how things start to change.",
}

// Cultural support passages appended to the intervention message. The
// deployment this directory ships for serves an Omani audience, so the
// passages draw on Islamic tradition the way the clinical team phrased them.

const suicideCulturalSupport = `Remember:
- God Almighty said: "And do not kill yourselves. Indeed, God is ever merciful to you."
- Your life is a trust from God, and you are responsible for preserving it.
- With hardship comes ease. That is a promise.
- Your family and your friends love you and need you.

Please reach out to:
- The imam of your mosque or a sheikh you trust
- Your family members or close friends
- The Mental Health Helpline: 80077`

const genericCulturalSupport = `God Almighty says: "And whoever saves a life, it is as if he had saved all of humanity."
You deserve life and happiness, and there is always hope.

Do not hesitate to ask for help from:
- Family and friends
- Mental health professionals
- Your faith community`

// culturalSupport picks the passage for a crisis type.
func culturalSupport(t risk.CrisisType) string {
	if t == risk.TypeSuicideRisk {
		return suicideCulturalSupport
	}
	return genericCulturalSupport
}

// templatesFor returns the variant list for a crisis type.
func templatesFor(t risk.CrisisType) []string {
	if variants, ok := interventionTemplates[t]; ok {
		return variants
	}
	return genericTemplates
}
