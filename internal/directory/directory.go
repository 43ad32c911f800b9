// Package directory holds the read-only reference data the booking flow
// selects from: specialties, their doctors and the bookable time slots.
package directory

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carebridge/medchat/internal/classify"
)

// Doctor is a bookable practitioner and the address notified on booking.
type Doctor struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"-"`
}

// Specialty groups doctors under a medical department.
type Specialty struct {
	Name    string   `yaml:"name" json:"name"`
	Doctors []Doctor `yaml:"doctors" json:"doctors"`
}

// Directory is the ordered set of specialties and time slots.
type Directory struct {
	Specialties []Specialty `yaml:"specialties" json:"specialties"`
	TimeSlots   []string    `yaml:"time_slots" json:"timeSlots"`
}

// LoadFile reads a YAML directory from path and validates it.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("directory: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML directory document and validates it.
func Parse(data []byte) (*Directory, error) {
	var dir Directory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("directory: decode yaml: %w", err)
	}
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return &dir, nil
}

// Validate rejects empty lists, duplicate names and doctors with no contact address.
func (d *Directory) Validate() error {
	if d == nil || len(d.Specialties) == 0 {
		return errors.New("directory: at least one specialty required")
	}
	if len(d.TimeSlots) == 0 {
		return errors.New("directory: at least one time slot required")
	}
	seen := make(map[string]struct{}, len(d.Specialties))
	for _, s := range d.Specialties {
		key := classify.Normalize(s.Name)
		if key == "" {
			return errors.New("directory: specialty name required")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("directory: duplicate specialty %q", s.Name)
		}
		seen[key] = struct{}{}
		if len(s.Doctors) == 0 {
			return fmt.Errorf("directory: specialty %q has no doctors", s.Name)
		}
		doctors := make(map[string]struct{}, len(s.Doctors))
		for _, doc := range s.Doctors {
			dkey := classify.Normalize(doc.Name)
			if dkey == "" {
				return fmt.Errorf("directory: unnamed doctor in %q", s.Name)
			}
			if strings.TrimSpace(doc.Email) == "" {
				return fmt.Errorf("directory: doctor %q has no email", doc.Name)
			}
			if _, dup := doctors[dkey]; dup {
				return fmt.Errorf("directory: duplicate doctor %q in %q", doc.Name, s.Name)
			}
			doctors[dkey] = struct{}{}
		}
	}
	slots := make(map[string]struct{}, len(d.TimeSlots))
	for _, slot := range d.TimeSlots {
		key := classify.Normalize(classify.NormalizeTimeSlot(slot))
		if key == "" {
			return fmt.Errorf("directory: invalid time slot %q", slot)
		}
		if _, dup := slots[key]; dup {
			return fmt.Errorf("directory: duplicate time slot %q", slot)
		}
		slots[key] = struct{}{}
	}
	return nil
}

// SpecialtyNames returns the canonical specialty names in display order.
func (d *Directory) SpecialtyNames() []string {
	names := make([]string, 0, len(d.Specialties))
	for _, s := range d.Specialties {
		names = append(names, s.Name)
	}
	return names
}

// MatchSpecialty resolves raw against the specialty list, ignoring case and spacing.
func (d *Directory) MatchSpecialty(raw string) (Specialty, bool) {
	want := classify.Normalize(raw)
	if want == "" {
		return Specialty{}, false
	}
	for _, s := range d.Specialties {
		if classify.Normalize(s.Name) == want {
			return s, true
		}
	}
	return Specialty{}, false
}

// Specialty looks up a specialty by its canonical name.
func (d *Directory) Specialty(name string) (Specialty, bool) {
	for _, s := range d.Specialties {
		if s.Name == name {
			return s, true
		}
	}
	return Specialty{}, false
}

// MatchDoctor resolves raw against the doctors of specialty.
func (d *Directory) MatchDoctor(specialty, raw string) (Doctor, bool) {
	s, ok := d.Specialty(specialty)
	if !ok {
		return Doctor{}, false
	}
	want := classify.Normalize(raw)
	for _, doc := range s.Doctors {
		if classify.Normalize(doc.Name) == want {
			return doc, true
		}
	}
	return Doctor{}, false
}

// MatchTimeSlot resolves raw to a canonical slot after time-slot normalization.
func (d *Directory) MatchTimeSlot(raw string) (string, bool) {
	want := classify.Normalize(classify.NormalizeTimeSlot(raw))
	if want == "" {
		return "", false
	}
	for _, slot := range d.TimeSlots {
		if classify.Normalize(classify.NormalizeTimeSlot(slot)) == want {
			return slot, true
		}
	}
	return "", false
}
