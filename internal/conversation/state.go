// Package conversation keeps the per-actor dialogue state in process memory.
//
// A State is an explicit tagged value: Step names where the actor is in a
// dialogue and Draft carries the fields accumulated so far. Nothing here is
// persisted; a restart returns every actor to idle.
package conversation

import "github.com/lueurxax/content-gate-bot/internal/core/domain"

// Flow groups the steps of one dialogue.
type Flow string

const (
	FlowNone          Flow = ""
	FlowAddContent    Flow = "add_content"
	FlowEditContent   Flow = "edit_content"
	FlowDeleteContent Flow = "delete_content"
	FlowChannels      Flow = "channels"
	FlowAdmins        Flow = "admins"
	FlowBroadcast     Flow = "broadcast"
	FlowCodeStats     Flow = "code_stats"
	FlowPost          Flow = "post"
	FlowReply         Flow = "reply"
	FlowContactAdmin  Flow = "contact_admin"
)

// Step is the state tag of a dialogue.
type Step string

const (
	StepIdle Step = ""

	StepAddCode   Step = "add_content.await_code"
	StepAddTitle  Step = "add_content.await_title"
	StepAddPoster Step = "add_content.await_poster"
	StepAddParts  Step = "add_content.collecting_parts"

	StepEditCode  Step = "edit_content.await_code"
	StepEditMenu  Step = "edit_content.menu"
	StepEditTitle Step = "edit_content.await_title"
	StepEditPart  Step = "edit_content.await_part"
	StepEditIndex Step = "edit_content.await_index"

	StepDeleteCode Step = "delete_content.await_code"

	StepChannelAction Step = "channels.select_action"
	StepChannelID     Step = "channels.await_id"
	StepChannelLink   Step = "channels.await_link"

	StepAdminAddID    Step = "admins.await_add_id"
	StepAdminRemoveID Step = "admins.await_remove_id"

	StepBroadcastInput Step = "broadcast.await_input"

	StepStatsCode Step = "code_stats.await_code"

	StepPostCode Step = "post.await_code"

	StepReplyText Step = "reply.await_text"

	StepContactText Step = "contact_admin.await_text"
)

var stepFlows = map[Step]Flow{
	StepAddCode:        FlowAddContent,
	StepAddTitle:       FlowAddContent,
	StepAddPoster:      FlowAddContent,
	StepAddParts:       FlowAddContent,
	StepEditCode:       FlowEditContent,
	StepEditMenu:       FlowEditContent,
	StepEditTitle:      FlowEditContent,
	StepEditPart:       FlowEditContent,
	StepEditIndex:      FlowEditContent,
	StepDeleteCode:     FlowDeleteContent,
	StepChannelAction:  FlowChannels,
	StepChannelID:      FlowChannels,
	StepChannelLink:    FlowChannels,
	StepAdminAddID:     FlowAdmins,
	StepAdminRemoveID:  FlowAdmins,
	StepBroadcastInput: FlowBroadcast,
	StepStatsCode:      FlowCodeStats,
	StepPostCode:       FlowPost,
	StepReplyText:      FlowReply,
	StepContactText:    FlowContactAdmin,
}

// Flow returns the dialogue the step belongs to.
func (s Step) Flow() Flow {
	return stepFlows[s]
}

// Steps returns every non-idle step.
func Steps() []Step {
	out := make([]Step, 0, len(stepFlows))
	for s := range stepFlows {
		out = append(out, s)
	}

	return out
}

// Draft holds the values collected by a dialogue before its commit step.
type Draft struct {
	Code        string
	Title       string
	PosterRef   string
	Caption     string
	Parts       []string
	ChannelKind domain.ChannelKind
	ChannelID   int64
	ReplyTo     int64
}

// State is the current position of an actor inside a dialogue.
type State struct {
	Step  Step
	Draft Draft
}

// Idle reports whether the state is the root state.
func (s State) Idle() bool {
	return s.Step == StepIdle
}

// With returns a copy of the state moved to step.
func (s State) With(step Step) State {
	s.Step = step
	s.Draft.Parts = append([]string(nil), s.Draft.Parts...)

	return s
}
