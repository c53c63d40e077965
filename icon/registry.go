package icon

// Icon is a registry identifier for a UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Play
	Pause
	Stop
	Sync
	Mute
	Volume
	Question
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・)",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(>‿<)",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(-_-)",
		squares: "🟨",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(._.)",
		squares: "🟥",
	},
	Sync: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~",
		kaomoji: "(ง'̀-'́)ง",
		squares: "🟪",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "M",
		kaomoji: "(ㆆ_ㆆ)",
		squares: "⬛",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "V",
		kaomoji: "(♪)",
		squares: "⬜",
	},
	Question: {
		emoji:   "🤔",
		nerd:    "",
		plain:   "?",
		kaomoji: "(?_?)",
		squares: "🟧",
	},
}
