package classify

import "strings"

// IsGreeting reports whether message contains a greeting substring.
func IsGreeting(message string) bool {
	return containsAny(Normalize(message), greetingKeywords)
}

// IsAppointmentIntent reports whether message contains a booking phrase.
func IsAppointmentIntent(message string) bool {
	return containsAny(Normalize(message), appointmentPhrases)
}

// IsMedicalTopic reports whether message mentions any medical keyword.
func IsMedicalTopic(message string) bool {
	return containsAny(Normalize(message), medicalKeywords)
}

// MatchedMedicalKeywords lists every medical keyword found in message, in
// keyword-list order.
func MatchedMedicalKeywords(message string) []string {
	normalized := Normalize(message)
	var matched []string
	for _, keyword := range medicalKeywords {
		if strings.Contains(normalized, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

func containsAny(normalized string, keywords []string) bool {
	if normalized == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
