package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Play
	Lock
	Key
	Globe
	Shield
	Arrow
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(ಥ﹏ಥ)",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(o_O)",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   "▶",
		kaomoji: "ヽ(°〇°)ﾉ",
		squares: "🟪",
	},
	Lock: {
		emoji:   "🔒",
		nerd:    "",
		plain:   "drm",
		kaomoji: "(￢_￢)",
		squares: "⬛",
	},
	Key: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "key",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟫",
	},
	Globe: {
		emoji:   "🌐",
		nerd:    "",
		plain:   "web",
		kaomoji: "(◕‿◕)",
		squares: "🟦",
	},
	Shield: {
		emoji:   "🛡️",
		nerd:    "",
		plain:   "#",
		kaomoji: "(ง'̀-'́)ง",
		squares: "🟧",
	},
	Arrow: {
		emoji:   "➡️",
		nerd:    "",
		plain:   "->",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "▶",
	},
}
