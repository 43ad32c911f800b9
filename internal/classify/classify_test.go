package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "dr. anjali sharma", Normalize("  Dr.   Anjali\tSHARMA \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeTimeSlot(t *testing.T) {
	tests := map[string]string{
		"10:00 AM":       "10:00 AM",
		"  1:00   pm ":   "1:00 pm",
		"2:00 PM IST":    "2:00 PM",
		"3:00 PM!!": "3:00 PM",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeTimeSlot(in), "input %q", in)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("john@example.com"))
	assert.True(t, IsValidEmail("  a.b@c.io "))
	assert.False(t, IsValidEmail("john@example"))
	assert.False(t, IsValidEmail("not an email"))
	assert.False(t, IsValidEmail(""))
}

func TestIsGreeting(t *testing.T) {
	for _, msg := range []string{"hi", "Hello there", "GOOD   morning", "hola amigo"} {
		assert.True(t, IsGreeting(msg), msg)
	}
	for _, msg := range []string{"Yes", "john@example.com", "What are the symptoms of flu?", ""} {
		assert.False(t, IsGreeting(msg), msg)
	}
}

func TestIsAppointmentIntent(t *testing.T) {
	assert.True(t, IsAppointmentIntent("I would like to BOOK   appointment please"))
	assert.True(t, IsAppointmentIntent("can I consult a doctor"))
	assert.False(t, IsAppointmentIntent("appointment"))
}

func TestIsMedicalTopic(t *testing.T) {
	assert.True(t, IsMedicalTopic("What are the symptoms of flu?"))
	assert.True(t, IsMedicalTopic("I have KNEE PAIN"))
	assert.False(t, IsMedicalTopic("what's the weather like"))
}

func TestMatchedMedicalKeywords(t *testing.T) {
	assert.Equal(t, []string{"symptom", "flu"}, MatchedMedicalKeywords("symptoms of flu"))
	assert.Empty(t, MatchedMedicalKeywords("nothing here"))
}
