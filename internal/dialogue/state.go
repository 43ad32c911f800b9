// Package dialogue implements the guided chat state machine: it tracks one
// conversation's stage and personal details, validates each message against
// the current stage and produces the next reply with its selectable actions.
package dialogue

import "fmt"

// Stage is one step of the guided dialogue.
type Stage int

const (
	StageFresh Stage = iota
	StageNamePrompt
	StageAwaitName
	StageAwaitEmail
	StageAwaitIntent
	StageSelectSpecialty
	StageSelectDoctor
	StageSelectTime
	StageConfirmed
	StageMedicalQA
)

var stageNames = map[Stage]string{
	StageFresh:           "fresh",
	StageNamePrompt:      "name_prompt",
	StageAwaitName:       "await_name",
	StageAwaitEmail:      "await_email",
	StageAwaitIntent:     "await_intent",
	StageSelectSpecialty: "select_specialty",
	StageSelectDoctor:    "select_doctor",
	StageSelectTime:      "select_time",
	StageConfirmed:       "confirmed",
	StageMedicalQA:       "medical_qa",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// State is the per-session conversation state. Empty strings mean "not yet provided".
type State struct {
	Stage             Stage  `json:"stage"`
	UserName          string `json:"userName,omitempty"`
	UserEmail         string `json:"userEmail,omitempty"`
	SelectedSpecialty string `json:"selectedSpecialty,omitempty"`
	SelectedDoctor    string `json:"selectedDoctor,omitempty"`
	IsMedicalInquiry  bool   `json:"isMedicalInquiry"`
}

// Reset returns the state to a fresh session.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) clearSelection() {
	s.SelectedSpecialty = ""
	s.SelectedDoctor = ""
}
