// internal/planner/intent.go
package planner

import (
	"regexp"
	"strings"
)

// Intent is the classification of a single user message.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentIncomplete Intent = "incomplete"
	IntentComplete   Intent = "complete"
)

// IntentResult is returned by Classify. Keys are snake_case because the
// orchestrator consumes this record as-is.
type IntentResult struct {
	Intent               Intent   `json:"intent"`
	MissingFields        []string `json:"missing_fields"`
	ClarifyingSuggestion string   `json:"clarifying_suggestion"`
	HasDestination       bool     `json:"has_destination"`
	HasDaysOrDates       bool     `json:"has_days_or_dates"`
	HasBudget            bool     `json:"has_budget"`
	GreetingResponse     string   `json:"greeting_response,omitempty"`
}

const (
	GreetingResponse = "Hello! I'm your Smart Travel Planner ✈️\n" +
		"Please tell me your destination, travel dates, budget, and preferences."

	invalidSuggestion = "Please tell me where you want to go, for how many days (or which dates), and your budget."

	suggestionPrefix = "I'd be happy to plan your trip. To get started, I need a few details: "
	suggestionSuffix = ". Please share these so I can create your itinerary."

	MissingDestination = "destination (e.g. city or region)"
	MissingDaysOrDates = "number of days or travel dates"
	MissingBudget      = "budget (e.g. in INR or your currency)"

	maxGreetingTokens = 4
	greetingMatchLen  = 200
)

var (
	greetingPhrases = map[string]struct{}{
		"hi": {}, "hello": {}, "hey": {}, "hey there": {},
		"good morning": {}, "good afternoon": {}, "good evening": {}, "good night": {},
		"greetings": {}, "howdy": {}, "hi there": {}, "hello there": {},
	}
	singleWordGreetings = map[string]struct{}{"hi": {}, "hey": {}, "hello": {}}

	invalidMissingFields = []string{"destination", "number of days or dates", "budget"}

	knownPlaces = []string{
		"goa", "mumbai", "delhi", "kerala", "rajasthan", "jaipur", "udaipur",
		"bangalore", "chennai", "hyderabad", "kolkata", "manali", "rishikesh",
		"andaman", "darjeeling", "shimla", "agra", "varanasi", "ladakh",
	}

	wordStart = `(?:^|[^\p{L}\p{N}_])`

	trailingPunct = regexp.MustCompile(`[!?.,]+$`)

	// RE2's \b is ASCII-only; wordStart also treats Devanagari as word characters.
	destinationCue   = regexp.MustCompile(wordStart + `(trip to|go to|visit|in|to)\s+[a-z\x{0900}-\x{097f}]+`)
	destinationLabel = regexp.MustCompile(wordStart + `(destination|place|city)\s*[:\s]*[a-z\x{0900}-\x{097f}]+`)
	namedTrip        = regexp.MustCompile(wordStart + `([a-z\x{0900}-\x{097f}]{3,})\s+(trip|travel)\b`)

	dayCount        = regexp.MustCompile(`\b(\d+)\s*-?\s*(day|night)s?\b`)
	forDayCount     = regexp.MustCompile(`\b(for|of)\s+\d+\s+(day|night)`)
	dateKeyword     = regexp.MustCompile(`\b(next week|next month|dates?|travel dates)\b`)
	monthName       = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	numericDate     = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)
	dayNightMention = regexp.MustCompile(`\d+\s*(day|night)`)

	currencyAmount = regexp.MustCompile(`(₹|rs\.?|inr)?\s*\d[\d,]*(\s*(k|thousand|lakh|lac|rupees?|inr))?`)
	budgetLabel    = regexp.MustCompile(`\bbudget\s*[:\s]*\d[\d,]*`)
	bareAmount     = regexp.MustCompile(`\b\d{4,6}\b`)
	longNumber     = regexp.MustCompile(`\b\d{4,}\b`)
)

// ClassifyValue classifies an arbitrary decoded value. Anything that is not
// a non-empty string takes the invalid-input path.
func ClassifyValue(v interface{}) IntentResult {
	s, ok := v.(string)
	if !ok {
		return invalidIntent()
	}
	return Classify(s)
}

// Classify decides whether message is a greeting, an incomplete trip request
// or a request complete enough to run the planning pipeline.
func Classify(message string) IntentResult {
	if message == "" {
		return invalidIntent()
	}

	text := strings.ToLower(strings.TrimSpace(message))
	if isGreeting(text) {
		return IntentResult{
			Intent:           IntentGreeting,
			MissingFields:    []string{},
			GreetingResponse: GreetingResponse,
		}
	}

	hasDestination := HasDestination(text)
	hasDays := HasDaysOrDates(text, message)
	hasBudget := HasBudget(text, message)

	if hasDestination && hasDays && hasBudget {
		return IntentResult{
			Intent:         IntentComplete,
			MissingFields:  []string{},
			HasDestination: true,
			HasDaysOrDates: true,
			HasBudget:      true,
		}
	}

	missing := make([]string, 0, 3)
	if !hasDestination {
		missing = append(missing, MissingDestination)
	}
	if !hasDays {
		missing = append(missing, MissingDaysOrDates)
	}
	if !hasBudget {
		missing = append(missing, MissingBudget)
	}

	return IntentResult{
		Intent:               IntentIncomplete,
		MissingFields:        missing,
		ClarifyingSuggestion: suggestionPrefix + strings.Join(missing, "; ") + suggestionSuffix,
		HasDestination:       hasDestination,
		HasDaysOrDates:       hasDays,
		HasBudget:            hasBudget,
	}
}

func invalidIntent() IntentResult {
	missing := make([]string, len(invalidMissingFields))
	copy(missing, invalidMissingFields)
	return IntentResult{
		Intent:               IntentIncomplete,
		MissingFields:        missing,
		ClarifyingSuggestion: invalidSuggestion,
	}
}

// isGreeting expects text already trimmed and lowercased.
func isGreeting(text string) bool {
	if len(strings.Fields(text)) > maxGreetingTokens {
		return false
	}

	truncated := text
	if r := []rune(text); len(r) > greetingMatchLen {
		truncated = string(r[:greetingMatchLen])
	}
	stripped := strings.TrimSpace(trailingPunct.ReplaceAllString(text, ""))

	for _, candidate := range []string{text, truncated, stripped} {
		if _, ok := greetingPhrases[candidate]; ok {
			return true
		}
	}
	_, ok := singleWordGreetings[stripped]
	return ok
}

// HasDestination reports whether lowered text names a place or carries a
// destination cue.
func HasDestination(lowered string) bool {
	if destinationCue.MatchString(lowered) || destinationLabel.MatchString(lowered) {
		return true
	}
	for _, place := range knownPlaces {
		if strings.Contains(lowered, place) {
			return true
		}
	}
	return namedTrip.MatchString(lowered)
}

// HasDaysOrDates reports whether the message mentions a duration or dates.
// Numeric dates are matched against the original, unlowered message.
func HasDaysOrDates(lowered, original string) bool {
	return dayCount.MatchString(lowered) ||
		forDayCount.MatchString(lowered) ||
		dateKeyword.MatchString(lowered) ||
		monthName.MatchString(lowered) ||
		numericDate.MatchString(original)
}

// HasBudget reports whether the message carries an amount of money.
// Any digit run satisfies the currency pattern, so a day count alone is
// enough.
func HasBudget(lowered, original string) bool {
	if currencyAmount.MatchString(lowered) || budgetLabel.MatchString(lowered) {
		return true
	}

	plain := strings.ReplaceAll(original, ",", "")
	if !bareAmount.MatchString(plain) {
		return false
	}
	if strings.Contains(lowered, "budget") ||
		strings.Contains(lowered, "rupee") ||
		strings.Contains(lowered, "inr") ||
		strings.Contains(lowered, "rs") ||
		strings.Contains(original, "₹") {
		return true
	}
	return dayNightMention.MatchString(lowered) && longNumber.MatchString(plain)
}
