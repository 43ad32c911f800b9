package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	dir := Default()
	require.NoError(t, dir.Validate())
	assert.Len(t, dir.Specialties, 10)
	assert.Equal(t, []string{"10:00 AM", "1:00 PM", "2:00 PM", "3:00 PM"}, dir.TimeSlots)
	assert.Equal(t, "Cardiology", dir.SpecialtyNames()[0])
}

func TestMatchSpecialtyFoldsCaseAndSpace(t *testing.T) {
	dir := Default()
	for _, raw := range []string{"cardiology", "  CARDIOLOGY ", "CarDiology"} {
		s, ok := dir.MatchSpecialty(raw)
		require.True(t, ok, raw)
		assert.Equal(t, "Cardiology", s.Name)
		assert.Len(t, s.Doctors, 2)
	}
	_, ok := dir.MatchSpecialty("Orthopedics")
	assert.False(t, ok)
	_, ok = dir.MatchSpecialty("")
	assert.False(t, ok)
}

func TestMatchDoctor(t *testing.T) {
	dir := Default()
	doc, ok := dir.MatchDoctor("Neurology", "dr.   anjali SHARMA")
	require.True(t, ok)
	assert.Equal(t, "Dr. Anjali Sharma", doc.Name)
	assert.Equal(t, "anjali.sharma@example.com", doc.Email)

	_, ok = dir.MatchDoctor("Cardiology", "Dr. Anjali Sharma")
	assert.False(t, ok, "doctor must belong to the specialty")
	_, ok = dir.MatchDoctor("Nope", "Dr. Somasekar")
	assert.False(t, ok)
}

func TestMatchTimeSlot(t *testing.T) {
	dir := Default()
	slot, ok := dir.MatchTimeSlot(" 1:00  pm ")
	require.True(t, ok)
	assert.Equal(t, "1:00 PM", slot)
	_, ok = dir.MatchTimeSlot("9:00 AM")
	assert.False(t, ok)
	_, ok = dir.MatchTimeSlot("???")
	assert.False(t, ok)
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
specialties:
  - name: Orthopedics
    doctors:
      - name: Dr. Bone
        email: bone@example.com
time_slots: ["9:00 AM"]
`)
	dir, err := Parse(doc)
	require.NoError(t, err)
	s, ok := dir.MatchSpecialty("orthopedics")
	require.True(t, ok)
	assert.Equal(t, "Dr. Bone", s.Doctors[0].Name)
}

func TestValidateRejectsBadDirectories(t *testing.T) {
	cases := map[string]string{
		"no specialties": `time_slots: ["9:00 AM"]`,
		"no slots": `
specialties:
  - name: A
    doctors: [{name: Dr. A, email: a@example.com}]`,
		"duplicate specialty": `
specialties:
  - name: A
    doctors: [{name: Dr. A, email: a@example.com}]
  - name: " a "
    doctors: [{name: Dr. B, email: b@example.com}]
time_slots: ["9:00 AM"]`,
		"missing email": `
specialties:
  - name: A
    doctors: [{name: Dr. A}]
time_slots: ["9:00 AM"]`,
		"no doctors": `
specialties:
  - name: A
time_slots: ["9:00 AM"]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
specialties:
  - name: Cardiology
    doctors: [{name: Dr. Heart, email: heart@example.com}]
time_slots: ["10:00 AM"]
`), 0o600))
	dir, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology"}, dir.SpecialtyNames())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
