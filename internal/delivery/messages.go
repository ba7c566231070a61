package delivery

const (
	msgJoinRequired     = "❗ Join the channel(s) below before getting this title:"
	msgStillNotJoined   = "❗ You have not joined these channel(s) yet:"
	msgCodeNotFound     = "❌ Code not found."
	msgNoParts          = "❌ No parts found."
	msgLoading          = "⏳ Sending, please wait..."
	msgPromoFailed      = "❌ Could not send the post."
	msgPromoFallback    = "Title is ready!"
	msgCatalogEmpty     = "⛔️ No titles yet."
	msgCatalogHeader    = "📄 All titles:"
	btnCheck            = "✅ Check"
	btnCheckAgain       = "✅ Check again"
	btnWatch            = "✨ Watch ✨"
	btnJoinPrefix       = "➕ "
	catalogLineTemplate = "%s. %s"
)
