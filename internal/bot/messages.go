package bot

// User-facing replies.
const (
	msgWelcome        = "✨ Send a code to get the title, or pick an option below."
	msgSendCode       = "🔢 Send the title code (digits only)."
	msgMainMenu       = "🏠 Back to the main menu."
	msgContactAsk     = "✍️ Write the message you want to send to the administrators.\n\nPress ❌ Cancel to go back."
	msgContactSent    = "✅ Your message was sent. An administrator will get back to you soon."
	msgContactNeedTxt = "❗ Send your message as text, or press ❌ Cancel."
	msgContactFmt     = "📩 New message:\n\n👤 From: %s | %d\n💬 Message: %s"
	btnReplyToUser    = "✉️ Reply"
)
