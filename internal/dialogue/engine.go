package dialogue

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/medchat/internal/classify"
	"github.com/carebridge/medchat/internal/directory"
	"github.com/carebridge/medchat/pkg/logging"
)

var errInconsistentState = errors.New("dialogue: inconsistent conversation state")

// guard is a classifier that pre-empts the stage table for free text.
type guard struct {
	name  string
	match func(Command) bool
	apply func(*Engine, *State) (Response, error)
}

// Engine computes replies and advances a State. It holds no per-session data,
// so one Engine serves every session; callers serialize access to each State.
type Engine struct {
	dir      *directory.Directory
	booker   Booker
	answerer Answerer
	logger   *logging.Logger
	guards   []guard
}

// NewEngine wires the engine to its reference data and collaborators. A nil
// directory falls back to directory.Default().
func NewEngine(dir *directory.Directory, booker Booker, answerer Answerer, logger *logging.Logger) *Engine {
	if dir == nil {
		dir = directory.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		dir:      dir,
		booker:   booker,
		answerer: answerer,
		logger:   logger,
		guards: []guard{
			{
				name:  "greeting",
				match: func(c Command) bool { return classify.IsGreeting(c.Text) },
				apply: (*Engine).greet,
			},
			{
				name:  "appointment_intent",
				match: func(c Command) bool { return classify.IsAppointmentIntent(c.Text) },
				apply: (*Engine).jumpToBooking,
			},
		},
	}
}

// Directory returns the reference data the engine matches against.
func (e *Engine) Directory() *directory.Directory {
	return e.dir
}

// Handle processes one inbound message against st, mutating it in place.
// It never fails: internal errors and panics become a server-error reply and
// leave the conversation at the intent prompt.
func (e *Engine) Handle(ctx context.Context, st *State, message string) (resp Response) {
	cmd := ParseMessage(message)
	switch cmd.Kind {
	case CommandEnd:
		st.Reset()
		return silentAck()
	case CommandStart:
		st.Reset()
	}

	from := st.Stage
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("dialogue: recovered from panic", "panic", fmt.Sprint(r), "stage", from.String())
			resp = e.fail(st)
		}
	}()

	var err error
	resp, err = e.step(ctx, st, cmd)
	if err != nil {
		e.logger.Error("dialogue: failed to handle message", "error", err, "stage", from.String())
		return e.fail(st)
	}
	if resp.Buttons == nil {
		resp.Buttons = []Button{}
	}
	resp.IsMedicalInquiry = st.IsMedicalInquiry
	return resp
}

func (e *Engine) fail(st *State) Response {
	st.Stage = StageAwaitIntent
	st.IsMedicalInquiry = false
	return serverError()
}

func (e *Engine) step(ctx context.Context, st *State, cmd Command) (Response, error) {
	if cmd.Kind == CommandStart {
		st.Stage = StageAwaitName
		return text(textAssist + " " + textNamePrompt), nil
	}
	if !cmd.IsControl() {
		for _, g := range e.guards {
			if g.match(cmd) {
				e.logger.Debug("dialogue: guard matched", "guard", g.name, "stage", st.Stage.String())
				return g.apply(e, st)
			}
		}
	}

	switch st.Stage {
	case StageFresh:
		st.Stage = StageNamePrompt
		return text(textAssist), nil
	case StageNamePrompt:
		st.Stage = StageAwaitName
		return text(textNamePrompt), nil
	case StageAwaitName:
		return e.handleName(st, cmd), nil
	case StageAwaitEmail:
		return e.handleEmail(st, cmd), nil
	case StageAwaitIntent:
		return e.handleIntent(st, cmd), nil
	case StageSelectSpecialty:
		return e.handleSpecialty(st, cmd), nil
	case StageSelectDoctor:
		return e.handleDoctor(st, cmd)
	case StageSelectTime:
		return e.handleTimeSlot(ctx, st, cmd)
	case StageConfirmed:
		return picker(textConfirmedRepeat, []Button{}), nil
	case StageMedicalQA:
		return e.handleMedicalQuestion(ctx, st, cmd), nil
	default:
		e.logger.Warn("dialogue: unknown stage", "stage", st.Stage.String())
		st.Stage = StageAwaitIntent
		st.IsMedicalInquiry = false
		return intentPrompt(textIntentQuestion), nil
	}
}

func (e *Engine) greet(st *State) (Response, error) {
	switch st.Stage {
	case StageFresh, StageNamePrompt:
		st.Stage = StageAwaitName
		return text("Hi there! " + textNamePrompt), nil
	case StageAwaitName:
		return text("Hello! Please provide your name."), nil
	case StageAwaitEmail:
		return text(fmt.Sprintf("Hi %s! Please share your email ID.", st.UserName)), nil
	case StageAwaitIntent:
		return intentPrompt("Greetings! " + textIntentQuestion), nil
	case StageSelectSpecialty:
		return picker("Hi! "+textSelectSpecialty, specialtyButtons(e.dir)), nil
	case StageSelectDoctor:
		s, ok := e.dir.Specialty(st.SelectedSpecialty)
		if !ok {
			return Response{}, fmt.Errorf("%w: no specialty at doctor selection", errInconsistentState)
		}
		return picker("Hello! "+fmt.Sprintf(textSelectDoctorFmt, s.Name), doctorButtons(s)), nil
	case StageSelectTime:
		return picker("Hi! "+fmt.Sprintf(textSelectTimeFmt, st.SelectedDoctor),
			timeSlotButtons(e.dir, st.SelectedDoctor, st.SelectedSpecialty)), nil
	case StageConfirmed:
		return picker("Hello! Your appointment is confirmed. To book another or ask a question, please start over.", []Button{}), nil
	case StageMedicalQA:
		st.IsMedicalInquiry = true
		return medicalPrompt(textMedicalQAGreet), nil
	default:
		return text("Hello! " + textAssist), nil
	}
}

func (e *Engine) jumpToBooking(st *State) (Response, error) {
	switch {
	case st.UserName == "":
		st.Stage = StageAwaitName
		return text(textNamePrompt), nil
	case st.UserEmail == "":
		st.Stage = StageAwaitEmail
		return text(fmt.Sprintf(textEmailPromptFmt, st.UserName)), nil
	default:
		st.Stage = StageSelectSpecialty
		st.IsMedicalInquiry = false
		st.clearSelection()
		return picker(textSelectSpecialty, specialtyButtons(e.dir)), nil
	}
}
