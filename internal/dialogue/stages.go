package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/carebridge/medchat/internal/classify"
)

func (e *Engine) handleName(st *State, cmd Command) Response {
	if cmd.IsControl() || cmd.Text == "" {
		return text("Please provide your name.")
	}
	st.UserName = cmd.Text
	st.Stage = StageAwaitEmail
	return text(fmt.Sprintf(textEmailPromptFmt, st.UserName))
}

func (e *Engine) handleEmail(st *State, cmd Command) Response {
	if cmd.IsControl() || !classify.IsValidEmail(cmd.Text) {
		return text("Invalid email ID, please try again.")
	}
	st.UserEmail = cmd.Text
	st.Stage = StageAwaitIntent
	return intentPrompt("Thank you for sharing the details. " + textIntentQuestion)
}

func (e *Engine) handleIntent(st *State, cmd Command) Response {
	switch {
	case cmd.Kind == CommandText && strings.EqualFold(cmd.Text, "yes"):
		st.Stage = StageSelectSpecialty
		st.IsMedicalInquiry = false
		return picker(textSelectSpecialty, specialtyButtons(e.dir))
	case cmd.Kind == CommandText && strings.EqualFold(cmd.Text, "no"):
		// Soft terminal: only a guard or a restart leads anywhere useful from here.
		st.Stage = StageSelectSpecialty
		st.IsMedicalInquiry = false
		return Response{Reply: "Thank you so much for visiting the website.", Buttons: []Button{}, HideInput: true}
	case cmd.Kind == CommandMedicalInquiry:
		st.Stage = StageMedicalQA
		st.IsMedicalInquiry = true
		return medicalPrompt("Please ask your medical-related question or return back.")
	case cmd.Kind == CommandReturnBack:
		st.IsMedicalInquiry = false
		return intentPrompt(textIntentQuestion)
	default:
		return intentPrompt("Please respond with 'Yes', 'No', or 'Ask Medical Related'.")
	}
}

func (e *Engine) handleSpecialty(st *State, cmd Command) Response {
	switch cmd.Kind {
	case CommandSelectSpecialty:
		if cmd.Malformed {
			return picker("Invalid specialty selected. Please try again.", specialtyButtons(e.dir))
		}
		s, ok := e.dir.MatchSpecialty(cmd.Args[0])
		if !ok {
			e.logger.Warn("dialogue: unknown specialty", "specialty", cmd.Args[0])
			return picker("Invalid specialty selected. Please try again.", specialtyButtons(e.dir))
		}
		st.SelectedSpecialty = s.Name
		st.SelectedDoctor = ""
		st.Stage = StageSelectDoctor
		return picker(fmt.Sprintf(textSelectDoctorFmt, s.Name), doctorButtons(s))
	case CommandReturnBack:
		st.clearSelection()
		st.Stage = StageAwaitIntent
		st.IsMedicalInquiry = false
		return intentPrompt(textIntentQuestion)
	default:
		return picker(textSelectSpecialty, specialtyButtons(e.dir))
	}
}

func (e *Engine) handleDoctor(st *State, cmd Command) (Response, error) {
	if cmd.Kind == CommandReturnBack {
		st.clearSelection()
		st.Stage = StageSelectSpecialty
		return picker(textSelectSpecialty, specialtyButtons(e.dir)), nil
	}

	s, ok := e.dir.Specialty(st.SelectedSpecialty)
	if !ok && cmd.Kind == CommandSelectDoctor && !cmd.Malformed {
		s, ok = e.dir.MatchSpecialty(cmd.Args[1])
	}
	if !ok {
		return Response{}, fmt.Errorf("%w: specialty %q at doctor selection", errInconsistentState, st.SelectedSpecialty)
	}

	if cmd.Kind != CommandSelectDoctor {
		return picker(fmt.Sprintf(textSelectDoctorFmt, s.Name), doctorButtons(s)), nil
	}
	if cmd.Malformed {
		return picker("Invalid doctor selection. Please try again.", doctorButtons(s)), nil
	}
	doc, ok := e.dir.MatchDoctor(s.Name, cmd.Args[0])
	if !ok {
		e.logger.Warn("dialogue: unknown doctor", "doctor", cmd.Args[0], "specialty", s.Name)
		return picker("Invalid doctor selected. Please try again.", doctorButtons(s)), nil
	}
	st.SelectedSpecialty = s.Name
	st.SelectedDoctor = doc.Name
	st.Stage = StageSelectTime
	return picker(fmt.Sprintf(textSelectTimeFmt, doc.Name), timeSlotButtons(e.dir, doc.Name, s.Name)), nil
}

func (e *Engine) handleTimeSlot(ctx context.Context, st *State, cmd Command) (Response, error) {
	switch cmd.Kind {
	case CommandReturnBack:
		s, ok := e.dir.Specialty(st.SelectedSpecialty)
		if !ok {
			return Response{}, fmt.Errorf("%w: specialty %q at time selection", errInconsistentState, st.SelectedSpecialty)
		}
		st.SelectedDoctor = ""
		st.Stage = StageSelectDoctor
		return picker(fmt.Sprintf(textSelectDoctorFmt, s.Name), doctorButtons(s)), nil
	case CommandSelectTime:
		return e.book(ctx, st, cmd), nil
	default:
		return picker(fmt.Sprintf(textSelectTimeFmt, st.SelectedDoctor),
			timeSlotButtons(e.dir, st.SelectedDoctor, st.SelectedSpecialty)), nil
	}
}

func (e *Engine) book(ctx context.Context, st *State, cmd Command) Response {
	retry := func(reply string) Response {
		return picker(reply, timeSlotButtons(e.dir, st.SelectedDoctor, st.SelectedSpecialty))
	}
	if cmd.Malformed {
		return retry("Invalid time slot selection. Please try again.")
	}

	s, ok := e.dir.Specialty(st.SelectedSpecialty)
	if !ok {
		return retry(fmt.Sprintf(textInvalidSelectFmt, "Specialty"))
	}
	doctorName := st.SelectedDoctor
	if doctorName == "" {
		doctorName = cmd.Args[1]
	}
	doc, ok := e.dir.MatchDoctor(s.Name, doctorName)
	if !ok {
		return retry(fmt.Sprintf(textInvalidSelectFmt, "Doctor"))
	}
	slot, ok := e.dir.MatchTimeSlot(cmd.Args[0])
	if !ok {
		return retry("Invalid time slot selected. Please try again.")
	}

	appt := Appointment{
		PatientEmail: st.UserEmail,
		DoctorEmail:  doc.Email,
		DoctorName:   doc.Name,
		TimeSlot:     classify.NormalizeTimeSlot(slot),
	}
	if e.booker == nil {
		e.logger.Error("dialogue: no booking collaborator configured")
		return picker(textBookingFailed, timeSlotButtons(e.dir, doc.Name, s.Name))
	}
	if err := e.booker.BookAppointment(ctx, appt); err != nil {
		e.logger.Error("dialogue: booking failed", "error", err, "doctor", doc.Name, "slot", appt.TimeSlot)
		return picker(textBookingFailed, timeSlotButtons(e.dir, doc.Name, s.Name))
	}

	patient := st.UserEmail
	*st = State{Stage: StageConfirmed}
	return picker(fmt.Sprintf(textConfirmationFmt, doc.Name, appt.TimeSlot, patient), []Button{})
}

func (e *Engine) handleMedicalQuestion(ctx context.Context, st *State, cmd Command) Response {
	if cmd.Kind == CommandReturnBack {
		st.Stage = StageAwaitIntent
		st.IsMedicalInquiry = false
		return intentPrompt(textIntentQuestion)
	}

	st.IsMedicalInquiry = true
	if cmd.Kind != CommandText || !classify.IsMedicalTopic(cmd.Text) {
		return medicalPrompt(textMedicalQAPrompt)
	}
	e.logger.Debug("dialogue: medical question", "keywords", classify.MatchedMedicalKeywords(cmd.Text))
	if e.answerer == nil {
		e.logger.Error("dialogue: no answering collaborator configured")
		return medicalPrompt(textMedicalQAPrompt)
	}
	return medicalPrompt(e.answerer.Answer(ctx, cmd.Text))
}
