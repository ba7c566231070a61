package intent

// Menu identifies a reply keyboard button.
type Menu string

// Admin root menu.
const (
	MenuChannels      Menu = "channels"
	MenuDeleteContent Menu = "delete_content"
	MenuAddContent    Menu = "add_content"
	MenuEditContent   Menu = "edit_content"
	MenuListCodes     Menu = "list_codes"
	MenuCodeStats     Menu = "code_stats"
	MenuStats         Menu = "stats"
	MenuAdmins        Menu = "admins"
	MenuBroadcast     Menu = "broadcast"
	MenuPost          Menu = "post"
	MenuHelp          Menu = "help"
)

// Administrator submenu.
const (
	MenuAdminAdd    Menu = "admin_add"
	MenuAdminRemove Menu = "admin_remove"
	MenuAdminList   Menu = "admin_list"
	MenuBack        Menu = "back"
)

// Edit content submenu.
const (
	MenuEditRename     Menu = "edit_rename"
	MenuEditAddPart    Menu = "edit_add_part"
	MenuEditDeletePart Menu = "edit_delete_part"
	MenuEditBack       Menu = "edit_back"
)

// User menu.
const (
	MenuCatalog Menu = "catalog"
	MenuContact Menu = "contact"
	MenuCancel  Menu = "cancel"
)

// MenuControl is the control token that aborts any dialogue.
const MenuControl Menu = "control"

var labels = map[Menu]string{
	MenuChannels:       "📡 Channels",
	MenuDeleteContent:  "❌ Delete code",
	MenuAddContent:     "➕ Add content",
	MenuEditContent:    "✏️ Edit code",
	MenuListCodes:      "📄 Code list",
	MenuCodeStats:      "📈 Code stats",
	MenuStats:          "📊 Statistics",
	MenuAdmins:         "👥 Admins",
	MenuBroadcast:      "📢 Broadcast",
	MenuPost:           "📤 Post",
	MenuHelp:           "📘 Guide",
	MenuAdminAdd:       "➕ Add admin",
	MenuAdminRemove:    "➖ Remove admin",
	MenuAdminList:      "👥 Admin list",
	MenuBack:           "⬅️ Back",
	MenuEditRename:     "1️⃣ Rename",
	MenuEditAddPart:    "2️⃣ Add part",
	MenuEditDeletePart: "3️⃣ Delete part",
	MenuEditBack:       "4️⃣ Back",
	MenuCatalog:        "🎞 All titles",
	MenuContact:        "✉️ Contact admin",
	MenuCancel:         "❌ Cancel",
	MenuControl:        "📡 Control",
}

// Label returns the button text for m.
func Label(m Menu) string {
	return labels[m]
}

// Row returns the labels of ms as one keyboard row.
func Row(ms ...Menu) []string {
	row := make([]string, 0, len(ms))
	for _, m := range ms {
		row = append(row, labels[m])
	}

	return row
}
