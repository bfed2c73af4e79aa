package models

// Colors is the fixed 18-color palette trackers pick from.
var Colors = []string{
	"#FD4C49", "#FF881E", "#007BFA", "#6E44FE", "#33CF69", "#E66DD4",
	"#F9D4D4", "#34A7FE", "#46E69D", "#35347C", "#FF674D", "#FF99CC",
	"#F6C48B", "#7994F5", "#832CF1", "#AD56DA", "#8D72E3", "#2FD058",
}

// Emojis is the fixed 18-emoji palette trackers pick from.
var Emojis = []string{
	"🙂", "😻", "🌺", "🐶", "❤️", "😱",
	"😇", "😡", "🥶", "🤔", "🙌", "🍔",
	"🥦", "🏓", "🥇", "🎸", "🏝️", "😪",
}

// ValidColor reports whether the value belongs to the color palette.
func ValidColor(color string) bool {
	for _, c := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

// ValidEmoji reports whether the value belongs to the emoji palette.
func ValidEmoji(emoji string) bool {
	for _, e := range Emojis {
		if e == emoji {
			return true
		}
	}
	return false
}
