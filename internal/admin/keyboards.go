package admin

import (
	"fmt"
	"strconv"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/intent"
)

// RootKeyboard is the administrator root menu.
func RootKeyboard() [][]string {
	return [][]string{
		intent.Row(intent.MenuChannels),
		intent.Row(intent.MenuDeleteContent, intent.MenuAddContent, intent.MenuEditContent),
		intent.Row(intent.MenuListCodes, intent.MenuCodeStats, intent.MenuStats),
		intent.Row(intent.MenuAdmins),
		intent.Row(intent.MenuBroadcast),
		intent.Row(intent.MenuPost, intent.MenuHelp),
	}
}

func controlKeyboard() [][]string {
	return [][]string{intent.Row(intent.MenuControl)}
}

func adminsKeyboard() [][]string {
	return [][]string{
		intent.Row(intent.MenuAdminAdd),
		intent.Row(intent.MenuAdminRemove),
		intent.Row(intent.MenuAdminList),
		intent.Row(intent.MenuBack),
	}
}

func editKeyboard() [][]string {
	return [][]string{
		intent.Row(intent.MenuEditRename, intent.MenuEditAddPart),
		intent.Row(intent.MenuEditDeletePart, intent.MenuEditBack),
	}
}

func channelTypeButtons() [][]ports.Button {
	return [][]ports.Button{{
		{Text: BtnChannelRequired, Data: intent.CallbackData(intent.ActionChannelType, string(domain.ChannelRequired))},
		{Text: BtnChannelAnnouncement, Data: intent.CallbackData(intent.ActionChannelType, string(domain.ChannelAnnouncement))},
	}}
}

func channelActionButtons() [][]ports.Button {
	return [][]ports.Button{
		{
			{Text: BtnChannelAdd, Data: intent.CallbackData(intent.ActionChannelAction, intent.ChannelActionAdd)},
			{Text: BtnChannelList, Data: intent.CallbackData(intent.ActionChannelAction, intent.ChannelActionList)},
		},
		{
			{Text: BtnChannelDelete, Data: intent.CallbackData(intent.ActionChannelAction, intent.ChannelActionDelete)},
			{Text: BtnChannelBack, Data: intent.CallbackData(intent.ActionChannelAction, intent.ChannelActionBack)},
		},
	}
}

func channelDeleteButtons(kind domain.ChannelKind, list []domain.Channel) [][]ports.Button {
	action := intent.ActionDeleteRequired
	if kind == domain.ChannelAnnouncement {
		action = intent.ActionDeleteAnnouncement
	}

	rows := make([][]ports.Button, 0, len(list))
	for _, ch := range list {
		rows = append(rows, []ports.Button{{
			Text: fmt.Sprintf(BtnChannelDeleteFmt, ch.ID),
			Data: intent.CallbackData(action, strconv.FormatInt(ch.ID, 10)),
		}})
	}

	return rows
}

// ReplyButton is attached to forwarded user messages so an administrator can answer.
func ReplyButton(label string, userID int64) [][]ports.Button {
	return [][]ports.Button{{{
		Text: label,
		Data: intent.CallbackData(intent.ActionReplyToUser, strconv.FormatInt(userID, 10)),
	}}}
}

func channelTypeMessage(chatID int64) ports.Message {
	return ports.Message{ChatID: chatID, Text: MsgChannelTypeAsk, Inline: channelTypeButtons()}
}

func channelDeleteMessage(chatID int64, kind domain.ChannelKind, list []domain.Channel) ports.Message {
	return ports.Message{ChatID: chatID, Text: MsgChannelDeleteAsk, Inline: channelDeleteButtons(kind, list)}
}
