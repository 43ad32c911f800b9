package dialogue

import "strings"

// CommandKind classifies an inbound message.
type CommandKind int

const (
	CommandText CommandKind = iota
	CommandStart
	CommandEnd
	CommandReturnBack
	CommandMedicalInquiry
	CommandSelectSpecialty
	CommandSelectDoctor
	CommandSelectTime
)

const (
	tokenStart            = "start"
	tokenEnd              = "end"
	tokenReturnBack       = "return_back"
	tokenMedicalInquiry   = "medical_inquiry"
	prefixSelectSpecialty = "select_specialty:"
	prefixSelectDoctor    = "select_doctor:"
	prefixSelectTime      = "select_time:"
)

// Command is a parsed inbound message. Args are unescaped and ordered as in
// the wire token: specialty; doctor, specialty; slot, doctor, specialty.
type Command struct {
	Kind      CommandKind
	Args      []string
	Text      string
	Malformed bool
}

// IsControl reports whether the command is a literal control or button token
// rather than free text typed by the user.
func (c Command) IsControl() bool {
	return c.Kind != CommandText
}

// ParseMessage turns a raw message into a Command.
func ParseMessage(raw string) Command {
	text := strings.TrimSpace(raw)
	cmd := Command{Kind: CommandText, Text: text}

	switch text {
	case tokenStart:
		cmd.Kind = CommandStart
		return cmd
	case tokenEnd:
		cmd.Kind = CommandEnd
		return cmd
	case tokenReturnBack:
		cmd.Kind = CommandReturnBack
		return cmd
	case tokenMedicalInquiry:
		cmd.Kind = CommandMedicalInquiry
		return cmd
	}

	switch {
	case strings.HasPrefix(text, prefixSelectSpecialty):
		cmd.Kind = CommandSelectSpecialty
		fields := splitEscaped(strings.TrimPrefix(text, prefixSelectSpecialty))
		name := strings.Join(fields, ":")
		if strings.TrimSpace(name) == "" {
			cmd.Malformed = true
			return cmd
		}
		cmd.Args = []string{name}
	case strings.HasPrefix(text, prefixSelectDoctor):
		cmd.Kind = CommandSelectDoctor
		fields := splitEscaped(strings.TrimPrefix(text, prefixSelectDoctor))
		if len(fields) < 2 {
			cmd.Malformed = true
			return cmd
		}
		n := len(fields)
		cmd.Args = []string{strings.Join(fields[:n-1], ":"), fields[n-1]}
	case strings.HasPrefix(text, prefixSelectTime):
		cmd.Kind = CommandSelectTime
		fields := splitEscaped(strings.TrimPrefix(text, prefixSelectTime))
		if len(fields) < 3 {
			cmd.Malformed = true
			return cmd
		}
		// Doctor and specialty never contain a bare colon; the slot may ("10:00 AM").
		n := len(fields)
		cmd.Args = []string{strings.Join(fields[:n-2], ":"), fields[n-2], fields[n-1]}
	}
	return cmd
}

// splitEscaped splits s on colons that are not preceded by a backslash and
// unescapes each field.
func splitEscaped(s string) []string {
	var (
		fields []string
		cur    strings.Builder
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
		case r == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, cur.String())
}

// Line breaks become spaces; matching folds whitespace, so the name still
// resolves to its canonical form.
var argEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	`\`, `\\`,
	`"`, `\"`,
	":", `\:`,
)

// EscapeArg makes a selectable name safe to embed in an action token.
func EscapeArg(s string) string {
	return argEscaper.Replace(s)
}
