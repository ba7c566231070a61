package admin

// Panel and shared replies.
const (
	MsgPanel         = "👮‍♂️ Admin panel:"
	MsgGenericFailed = "⚠️ Something went wrong, please try again."
	MsgUseButtons    = "ℹ️ Use the buttons below."
)

// Content replies.
const (
	MsgAskCode          = "📝 Send the code (digits only):"
	MsgAskTitle         = "📝 Send the title:"
	MsgAskPoster        = "📸 Send the promo post: a photo with an optional caption, or plain text."
	MsgAskParts         = "📥 Now send the parts (video or file). Send /done when finished."
	MsgPartAddedFmt     = "✅ Part added. %d part(s) so far."
	MsgNeedPartMedia    = "❗ Send a video or file, or /done to finish."
	MsgContentSavedFmt  = "✅ Saved!\n\n📌 Code: %s\n📖 Title: %s\n📸 Caption: %s\n🎞 Parts: %d"
	MsgInvalidCode      = "❗ The code must contain digits only."
	MsgEmptyTitle       = "❗ The title cannot be empty."
	MsgCodeNotFound     = "❌ No such code."
	MsgEditAskCode      = "📝 Which code do you want to edit?"
	MsgEditMenuFmt      = "🔎 Code: %s\n📌 Title: %s\n🎞 Parts: %d\n\nChoose what to edit:"
	MsgEditAskTitle     = "📝 Send the new title:"
	MsgEditAskPart      = "🎞 Send the new part (video or file):"
	MsgEditAskIndexFmt  = "❌ Send the number of the part to delete (1-%d):"
	MsgTitleUpdated     = "✅ Title updated."
	MsgPartAppended     = "✅ Part added."
	MsgPartRemoved      = "✅ Part deleted."
	MsgInvalidIndex     = "❗ Send the part number."
	MsgIndexOutOfRange  = "❗ There is no part with that number."
	MsgDeleteAskCode    = "🗑 Which code do you want to delete? Send the code."
	MsgDeletedFmt       = "✅ Code %s deleted."
	MsgDeleteNotFound   = "❌ Code not found or could not be deleted."
	MsgStatsAskCode     = "📥 Send the code:"
	MsgStatsNotFound    = "❗ No statistics for that code."
	MsgCodeStatsFmt     = "📊 Statistics for %s:\n🔍 Searched: %d\n👁 Viewed: %d"
	MsgCodesEmpty       = "There are no codes yet."
	MsgCodesHeader      = "📄 All codes:"
	MsgPostAskCode      = "🔢 Which code do you want to post to the channels?\nExample: 147"
	MsgPostNoChannels   = "📭 No announcement channels configured."
	MsgPostDoneFmt      = "✅ Post sent.\n\n✅ Delivered: %d\n❌ Failed: %d"
	BtnPostDownload     = "✨ Download ✨"
	MsgStatsOverviewFmt = "💡 Database latency: %.2f ms\n\n👥 Users: %d\n\n📂 Titles: %d\n\n📅 Users joined today: %d"
	MsgUsersOnFmt       = "📅 Users joined on %s: %d"
	MsgUsersUsage       = "Usage: /users <date>, for example /users 2024-05-01"
)

// Channel replies.
const (
	MsgChannelTypeAsk         = "📡 Which channel list do you want to manage?"
	MsgChannelMenuRequired    = "📡 Required subscription channels:"
	MsgChannelMenuAnnounce    = "📌 Announcement channels:"
	MsgChannelChooseTypeFirst = "❗ Choose the channel list first."
	MsgChannelAskID           = "🆔 Send the channel id (for example: -1001234567890):"
	MsgChannelInvalidID       = "❗ Send a numeric id (for example: -1001234567890)."
	MsgChannelAskLink         = "🔗 Now send the channel link (for example: https://t.me/+invitehash):"
	MsgChannelInvalidLink     = "❗ Send the full link (for example: https://t.me/...)"
	MsgChannelExists          = "ℹ️ This channel is already added."
	MsgChannelAddedFmt        = "✅ Channel added!\n🆔 %d\n🔗 %s"
	MsgChannelsEmpty          = "📭 No channels yet."
	MsgChannelLineFmt         = "%d. 🆔 %d\n   🔗 %s"
	MsgChannelDeleteAsk       = "❌ Which channel do you want to delete?"
	MsgChannelDeletedFmt      = "❌ Channel deleted!\n🆔 %d"
	MsgChannelMissing         = "ℹ️ That channel is not in the list."
	MsgCallbackDeleted        = "Deleted ✅"
	BtnChannelRequired        = "🔗 Required subscription"
	BtnChannelAnnouncement    = "📌 Announcement channels"
	BtnChannelAdd             = "➕ Add channel"
	BtnChannelList            = "📋 Channel list"
	BtnChannelDelete          = "❌ Delete channel"
	BtnChannelBack            = "⬅️ Back"
	BtnChannelDeleteFmt       = "Delete: %d"
)

// Administrator replies.
const (
	MsgAdminsMenu        = "👥 Administrators:"
	MsgAdminAskAddID     = "🆔 Send the Telegram id of the new administrator."
	MsgAdminAskRemoveID  = "🗑 Send the id of the administrator to remove."
	MsgAdminInvalidID    = "❗ Send digits only (Telegram user id)."
	MsgAdminExists       = "ℹ️ This user is already an administrator."
	MsgAdminAddedFmt     = "✅ %d added as administrator."
	MsgAdminWelcome      = "✅ You have been added as a bot administrator."
	MsgAdminMissing      = "ℹ️ This id is not in the list."
	MsgAdminRemovedFmt   = "✅ %d removed from administrators."
	MsgAdminsEmpty       = "ℹ️ The administrator list is empty."
	MsgAdminsListHeader  = "👥 Current administrators:"
	MsgAdminListEntryFmt = "• %d"
)

// Broadcast replies.
const (
	MsgBroadcastAsk     = "📨 Broadcast format:\n@channel message_id"
	MsgBroadcastFormat  = "❗ Wrong format. Example: @mychannel 123"
	MsgBroadcastBadID   = "❗ The message id must be a number."
	MsgBroadcastDoneFmt = "✅ Sent: %d\n❌ Failed: %d"
)

// Reply-to-user replies.
const (
	MsgReplyAsk       = "✍️ Now write the message for the user."
	MsgReplyEmpty     = "❗ Send a text message."
	MsgReplyToUserFmt = "✉️ Reply from the administrator:\n\n%s"
	MsgReplySent      = "✅ Reply sent to the user."
	MsgReplyFailedFmt = "❌ Could not deliver the reply: %v"
)

// Guide.
const (
	MsgHelpIndex    = "📘 What do you need help with?"
	MsgHelpNotFound = "❌ No such page."
	BtnHelpBack     = "⬅️ Back"
)
