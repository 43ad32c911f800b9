package dialogue

import (
	"encoding/json"
	"strings"
)

// ActionKind tags what a button does when pressed.
type ActionKind string

const (
	ActionConfirmYesNo    ActionKind = "confirm_yes_no"
	ActionSelectSpecialty ActionKind = "select_specialty"
	ActionSelectDoctor    ActionKind = "select_doctor"
	ActionSelectTime      ActionKind = "select_time"
	ActionMedicalInquiry  ActionKind = "medical_inquiry"
	ActionReturnBack      ActionKind = "return_back"
)

// Button CSS classes understood by the widget.
const (
	ClassChat       = "chat-button"
	ClassSpecialty  = "specialty-button"
	ClassTimeSlot   = "time-slot-button"
	ClassReturnBack = "return-back-button"
)

// Action is a tagged button action with the literal arguments needed to
// rebuild the follow-up message.
type Action struct {
	Kind ActionKind
	Args []string
}

// Message returns the inbound message this action sends back to the engine.
func (a Action) Message() string {
	switch a.Kind {
	case ActionConfirmYesNo:
		if len(a.Args) > 0 {
			return a.Args[0]
		}
		return ""
	case ActionMedicalInquiry:
		return tokenMedicalInquiry
	case ActionReturnBack:
		return tokenReturnBack
	case ActionSelectSpecialty:
		return prefixSelectSpecialty + joinEscaped(a.Args)
	case ActionSelectDoctor:
		return prefixSelectDoctor + joinEscaped(a.Args)
	case ActionSelectTime:
		return prefixSelectTime + joinEscaped(a.Args)
	default:
		return ""
	}
}

func joinEscaped(args []string) string {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = EscapeArg(arg)
	}
	return strings.Join(escaped, ":")
}

// Button is one selectable action rendered by the widget.
type Button struct {
	Text   string
	Class  string
	Action Action
}

type buttonWire struct {
	Text    string     `json:"text"`
	Class   string     `json:"class"`
	Action  ActionKind `json:"action"`
	Args    []string   `json:"args"`
	Message string     `json:"message"`
}

// MarshalJSON flattens the action so transports can resend Message verbatim.
func (b Button) MarshalJSON() ([]byte, error) {
	args := b.Action.Args
	if args == nil {
		args = []string{}
	}
	return json.Marshal(buttonWire{
		Text:    b.Text,
		Class:   b.Class,
		Action:  b.Action.Kind,
		Args:    args,
		Message: b.Action.Message(),
	})
}

func (b *Button) UnmarshalJSON(data []byte) error {
	var w buttonWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.Text = w.Text
	b.Class = w.Class
	b.Action = Action{Kind: w.Action, Args: w.Args}
	return nil
}

// Response is everything a transport needs to render one engine turn.
type Response struct {
	Reply            string   `json:"reply"`
	Buttons          []Button `json:"buttons"`
	DisableInput     bool     `json:"disableInput"`
	HideInput        bool     `json:"hideInput"`
	IsMedicalInquiry bool     `json:"isMedicalInquiry"`
	Silent           bool     `json:"silent,omitempty"`
}
