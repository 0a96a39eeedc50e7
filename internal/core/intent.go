package core

import "strings"

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentTermination   Intent = "termination"
	IntentTooShort      Intent = "too_short"
	IntentCompanyInfo   Intent = "company_info"
	IntentProductLookup Intent = "product_lookup"
)

var greetings = map[string]bool{
	"start": true,
	"hi":    true,
	"hello": true,
}

// terminationPhrases must match the whole query exactly; a substring
// match would end conversations on partial mentions.
var terminationPhrases = map[string]bool{
	"thank you":    true,
	"got it":       true,
	"no thank you": true,
	"that's all":   true,
	"no":           true,
	"thanks":       true,
	"thankyou":     true,
}

// companyKeywords are deliberately loose substring checks: a false
// positive routes to the richer company response, which is an
// acceptable default for a small catalog.
var companyKeywords = []string{"location", "branch", "hour", "address", "company"}

var imageKeywords = []string{"photo", "image", "show", "images", "photos", "pics", "pic"}

// Classify normalizes a raw query (lower-case, trim) and decides its
// intent. First match wins. Exact greetings are checked ahead of the
// length guard so that "hi" greets rather than being rejected as too
// short.
func Classify(rawQuery string) (Intent, string) {
	q := strings.ToLower(strings.TrimSpace(rawQuery))

	switch {
	case greetings[q]:
		return IntentGreeting, q
	case len(q) < 3 && q != "no":
		return IntentTooShort, q
	case terminationPhrases[q]:
		return IntentTermination, q
	case containsAny(q, companyKeywords):
		return IntentCompanyInfo, q
	default:
		return IntentProductLookup, q
	}
}

// WantsImage reports whether the normalized query asks to see an image.
func WantsImage(normalizedQuery string) bool {
	return containsAny(normalizedQuery, imageKeywords)
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
