package recall

import (
	"regexp"
	"strings"
)

// appCategories maps a display category to the app names that imply it.
// Matching is case-insensitive substring on the entry's app name.
var appCategories = []struct {
	name string
	apps []string
}{
	{"Development", []string{
		"VS Code", "Visual Studio", "Code", "IntelliJ", "WebStorm", "PyCharm",
		"Xcode", "Android Studio", "Terminal", "iTerm", "Sublime", "Cursor",
		"Atom", "Vim", "Emacs", "Neovim", "nvim", "code-server",
	}},
	{"Browser", []string{
		"Chrome", "Firefox", "Safari", "Edge", "Arc", "Brave", "Opera", "Chromium",
	}},
	{"Communication", []string{
		"Slack", "Discord", "Teams", "Zoom", "Messages", "Mail",
		"Outlook", "Telegram", "WhatsApp", "Signal",
	}},
	{"Design", []string{
		"Figma", "Sketch", "Photoshop", "Illustrator", "Canva",
		"Adobe XD", "Affinity", "GIMP", "Inkscape",
	}},
	{"Productivity", []string{
		"Notion", "Obsidian", "Notes", "Evernote", "Bear",
		"Word", "Excel", "PowerPoint", "Pages", "Numbers", "Keynote",
		"Google Docs", "Google Sheets",
	}},
	{"Media", []string{
		"Spotify", "Music", "VLC", "QuickTime", "Photos", "Preview", "YouTube",
	}},
	{"System", []string{
		"Finder", "Explorer", "Settings", "System Preferences", "Activity Monitor",
	}},
}

// extTags maps file extensions spotted in window titles to language tags.
var extTags = map[string]string{
	"tsx": "React", "jsx": "React",
	"ts": "TypeScript", "js": "JavaScript",
	"py": "Python", "go": "Go", "rs": "Rust",
	"md": "Markdown", "json": "Config",
	"html": "HTML", "css": "CSS", "scss": "SCSS",
}

var titleExtRe = regexp.MustCompile(`\.(\w+)(?:\s|$|-|—)`)

// CategoryFor returns the display category for an app name, or nil if the
// app matches no known category.
func CategoryFor(appName string) *string {
	lower := strings.ToLower(appName)
	for _, cat := range appCategories {
		for _, a := range cat.apps {
			if strings.Contains(lower, strings.ToLower(a)) {
				c := cat.name
				return &c
			}
		}
	}
	return nil
}

// DeriveTags builds the display tags for an entry from its app name and
// window title: category first, then the cleaned app name, then a language
// tag from a file extension in the title. Order-preserving, deduplicated.
func DeriveTags(appName, windowTitle string) []string {
	var tags []string
	seen := make(map[string]struct{})
	add := func(t string) {
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	if c := CategoryFor(appName); c != nil {
		add(*c)
	}

	if appName != "" && !strings.EqualFold(appName, "unknown") {
		clean := strings.TrimSpace(strings.NewReplacer(".exe", "", ".app", "").Replace(appName))
		add(clean)
	}

	if m := titleExtRe.FindStringSubmatch(windowTitle); m != nil {
		add(extTags[strings.ToLower(m[1])])
	}

	return tags
}
