// Package intent turns a raw inbound update into one of a small closed set of
// intents. Classification happens once per update, before any dialogue
// dispatch, so the state machines never look at raw strings to decide what
// kind of input they received.
package intent

import (
	"strings"
	"unicode"
)

// Kind is the intent tag.
type Kind int

const (
	KindUnknown Kind = iota
	// KindStart is the /start command, optionally carrying a code.
	KindStart
	// KindControl aborts the current dialogue.
	KindControl
	// KindDone terminates part collection.
	KindDone
	// KindMenu is a press of a known keyboard button.
	KindMenu
	// KindCode is a bare numeric text.
	KindCode
	// KindText is any other text.
	KindText
	// KindMedia is a photo, video or document.
	KindMedia
	// KindCallback is an inline button press.
	KindCallback
	// KindCommand is any other slash command. Action holds its name.
	KindCommand
)

var kindNames = map[Kind]string{
	KindUnknown:  "unknown",
	KindStart:    "start",
	KindControl:  "control",
	KindDone:     "done",
	KindMenu:     "menu",
	KindCode:     "code",
	KindText:     "text",
	KindMedia:    "media",
	KindCallback: "callback",
	KindCommand:  "command",
}

func (k Kind) String() string {
	return kindNames[k]
}

// MediaKind distinguishes media inputs.
type MediaKind string

const (
	MediaPhoto    MediaKind = "photo"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// Callback actions carried in inline button data as "<action>:<arg>".
const (
	ActionCheckSub           = "checksub"
	ActionDownload           = "download"
	ActionChannelType        = "channel_type"
	ActionChannelAction      = "action"
	ActionDeleteRequired     = "delete_required"
	ActionDeleteAnnouncement = "delete_announcement"
	ActionReplyToUser        = "reply_to_user"
	ActionHelp               = "help"
	ActionHelpBack           = "help_back"
)

// Channel menu sub-actions carried by ActionChannelAction.
const (
	ChannelActionAdd    = "add"
	ChannelActionList   = "list"
	ChannelActionDelete = "delete"
	ChannelActionBack   = "back"
)

// Commands recognized by the classifier.
const (
	CmdStart  = "start"
	CmdDone   = "done"
	CmdCancel = "cancel"
	CmdUsers  = "users"
)

// CallbackData builds inline button data for action and arg.
func CallbackData(action, arg string) string {
	if arg == "" {
		return action
	}

	return action + ":" + arg
}

// Input is the transport-neutral view of an inbound update.
type Input struct {
	Text         string
	Caption      string
	Command      string
	CommandArgs  string
	PhotoRef     string
	VideoRef     string
	DocumentRef  string
	CallbackID   string
	CallbackData string
	MessageID    int
}

// Intent is the classified update.
type Intent struct {
	Kind Kind
	// Text is the trimmed message text, or the /start argument.
	Text string
	Menu Menu

	Media     string
	MediaKind MediaKind
	Caption   string

	Action     string
	Arg        string
	CallbackID string
	MessageID  int
}

// Classifier maps inputs to intents using the configured button labels.
type Classifier struct {
	menus map[string]Menu
}

// NewClassifier creates a classifier for the default labels.
func NewClassifier() *Classifier {
	menus := make(map[string]Menu, len(labels))
	for m, label := range labels {
		menus[label] = m
	}

	return &Classifier{menus: menus}
}

// Classify returns the intent for in.
func (c *Classifier) Classify(in Input) Intent {
	if in.CallbackData != "" {
		return classifyCallback(in)
	}

	if media, kind := mediaOf(in); media != "" {
		return Intent{Kind: KindMedia, Media: media, MediaKind: kind, Caption: in.Caption, MessageID: in.MessageID}
	}

	text := strings.TrimSpace(in.Text)
	base := Intent{Text: text, MessageID: in.MessageID}

	cmd := strings.ToLower(in.Command)

	switch cmd {
	case CmdStart:
		base.Kind = KindStart
		base.Text = strings.TrimSpace(in.CommandArgs)

		return base
	case CmdDone:
		base.Kind = KindDone

		return base
	case CmdCancel:
		base.Kind = KindControl

		return base
	case "":
	default:
		base.Kind = KindCommand
		base.Action = cmd
		base.Arg = strings.TrimSpace(in.CommandArgs)

		return base
	}

	if m, ok := c.menus[text]; ok {
		if m == MenuControl {
			base.Kind = KindControl

			return base
		}

		base.Kind = KindMenu
		base.Menu = m

		return base
	}

	switch {
	case strings.EqualFold(text, "/"+CmdDone):
		base.Kind = KindDone
	case IsNumeric(text):
		base.Kind = KindCode
	case text != "":
		base.Kind = KindText
	default:
		base.Kind = KindUnknown
	}

	return base
}

func classifyCallback(in Input) Intent {
	action, arg, _ := strings.Cut(in.CallbackData, ":")

	return Intent{
		Kind:       KindCallback,
		Action:     action,
		Arg:        arg,
		CallbackID: in.CallbackID,
		MessageID:  in.MessageID,
	}
}

func mediaOf(in Input) (string, MediaKind) {
	switch {
	case in.PhotoRef != "":
		return in.PhotoRef, MediaPhoto
	case in.VideoRef != "":
		return in.VideoRef, MediaVideo
	case in.DocumentRef != "":
		return in.DocumentRef, MediaDocument
	default:
		return "", ""
	}
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
