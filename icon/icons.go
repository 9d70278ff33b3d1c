package icon

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Question
	Link
	Video
	Audio
	Subtitles
	Mux
	Folder
	Playlist
	Progress
	Cleanup
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(^o^)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "✗",
		kaomoji: "(x_x)",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(・_・;)",
		squares: "🟨",
	},
	Question: {
		emoji:   "❓",
		nerd:    "",
		plain:   "?",
		kaomoji: "(?_?)",
		squares: "🟦",
	},
	Link: {
		emoji:   "🌐",
		nerd:    "",
		plain:   "~",
		kaomoji: "(o_o)",
		squares: "🟦",
	},
	Video: {
		emoji:   "🎞️",
		nerd:    "",
		plain:   "V",
		kaomoji: "[▶]",
		squares: "🟪",
	},
	Audio: {
		emoji:   "🎧",
		nerd:    "",
		plain:   "A",
		kaomoji: "(♪)",
		squares: "🟪",
	},
	Subtitles: {
		emoji:   "💬",
		nerd:    "",
		plain:   "S",
		kaomoji: "(｀・ω・´)",
		squares: "🟪",
	},
	Mux: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ง •̀_•́)ง",
		squares: "🟧",
	},
	Folder: {
		emoji:   "📁",
		nerd:    "",
		plain:   ">",
		kaomoji: "(⌐■_■)",
		squares: "🟫",
	},
	Playlist: {
		emoji:   "📜",
		nerd:    "",
		plain:   "#",
		kaomoji: "(≧◡≦)",
		squares: "⬜",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "*",
		kaomoji: "(._.)",
		squares: "⬛",
	},
	Cleanup: {
		emoji:   "🧹",
		nerd:    "",
		plain:   "-",
		kaomoji: "(￣▽￣)",
		squares: "⬜",
	},
}
