package dialogue

import "github.com/carebridge/medchat/internal/directory"

const (
	textIntentQuestion   = "Do you want to book an appointment or ask a medical-related question?"
	textSelectSpecialty  = "Please select a specialty or return back:"
	textNamePrompt       = "May I know your name?"
	textAssist           = "How can I assist you today?"
	textServerError      = "Server error. Please try again."
	textBookingFailed    = "Failed to book appointment. Please try again."
	textMedicalQAGreet   = "Hello! I'm here to help with your medical questions. Please ask something like 'What causes leg pain?' or select 'Return Back'."
	textMedicalQAPrompt  = "Please ask a medical-related question (e.g., about symptoms, treatments, or conditions) or return back."
	textConfirmedRepeat  = "Your appointment is confirmed. To book another appointment or ask a medical question, please start over."
	textEmailPromptFmt   = "Hi %s! Can you please send your email ID for communication?"
	textSelectDoctorFmt  = "Please select a doctor for %s or return back:"
	textSelectTimeFmt    = "Please select a time slot for %s or return back:"
	textConfirmationFmt  = "Your appointment with %s on %s IST has been successfully confirmed. A confirmation email has been sent to %s. Kindly arrive 10 minutes prior to your scheduled appointment time."
	textInvalidSelectFmt = "Invalid selection: %s is invalid. Please try again."
)

func returnBackButton() Button {
	return Button{Text: "Return Back", Class: ClassReturnBack, Action: Action{Kind: ActionReturnBack}}
}

func intentButtons() []Button {
	return []Button{
		{Text: "Yes", Class: ClassChat, Action: Action{Kind: ActionConfirmYesNo, Args: []string{"Yes"}}},
		{Text: "No", Class: ClassChat, Action: Action{Kind: ActionConfirmYesNo, Args: []string{"No"}}},
		{Text: "Ask Medical Related", Class: ClassChat, Action: Action{Kind: ActionMedicalInquiry}},
	}
}

func specialtyButtons(dir *directory.Directory) []Button {
	buttons := make([]Button, 0, len(dir.Specialties)+1)
	for _, s := range dir.Specialties {
		buttons = append(buttons, Button{
			Text:   s.Name,
			Class:  ClassSpecialty,
			Action: Action{Kind: ActionSelectSpecialty, Args: []string{s.Name}},
		})
	}
	return append(buttons, returnBackButton())
}

func doctorButtons(s directory.Specialty) []Button {
	buttons := make([]Button, 0, len(s.Doctors)+1)
	for _, doc := range s.Doctors {
		buttons = append(buttons, Button{
			Text:   doc.Name,
			Class:  ClassSpecialty,
			Action: Action{Kind: ActionSelectDoctor, Args: []string{doc.Name, s.Name}},
		})
	}
	return append(buttons, returnBackButton())
}

func timeSlotButtons(dir *directory.Directory, doctor, specialty string) []Button {
	buttons := make([]Button, 0, len(dir.TimeSlots)+1)
	for _, slot := range dir.TimeSlots {
		buttons = append(buttons, Button{
			Text:   slot,
			Class:  ClassTimeSlot,
			Action: Action{Kind: ActionSelectTime, Args: []string{slot, doctor, specialty}},
		})
	}
	return append(buttons, returnBackButton())
}

// text builds a reply with free-text input left enabled.
func text(reply string) Response {
	return Response{Reply: reply, Buttons: []Button{}}
}

// picker builds a reply that hides the input in favour of buttons.
func picker(reply string, buttons []Button) Response {
	return Response{Reply: reply, Buttons: buttons, DisableInput: true, HideInput: true}
}

func intentPrompt(reply string) Response {
	return Response{Reply: reply, Buttons: intentButtons(), HideInput: true}
}

func medicalPrompt(reply string) Response {
	return Response{Reply: reply, Buttons: []Button{returnBackButton()}}
}

func silentAck() Response {
	return Response{Buttons: []Button{}, Silent: true}
}

func serverError() Response {
	return picker(textServerError, []Button{returnBackButton()})
}
