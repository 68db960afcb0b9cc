package lexicon

import "strings"

type Mood string

const (
	Love         Mood = "Love"
	Kissing      Mood = "Kissing"
	Hug          Mood = "Hug"
	Support      Mood = "Support"
	Happy        Mood = "Happy"
	Celebrate    Mood = "Celebrate"
	Angry        Mood = "Angry"
	Sad          Mood = "Sad"
	Disappointed Mood = "Disappointed"
)

// variationSelector is dropped from lookups so "❤️" and "❤" agree.
const variationSelector = "\ufe0f"

// MoodMap maps an emoji (without variation selectors) to its mood.
type MoodMap map[string]Mood

var defaultMoods = MoodMap{
	"❤": Love,
	"💖": Love,
	"😘": Kissing,
	"🤬": Angry,
	"😢": Sad,
	"🙁": Disappointed,
	"😄": Happy,
	"🎉": Celebrate,
	"🤗": Support,
	"🫂": Hug,
}

var icons = map[Mood]string{
	Love:         "❤️",
	Kissing:      "😘",
	Hug:          "🫂",
	Support:      "🤗",
	Happy:        "😄",
	Celebrate:    "🎉",
	Angry:        "🤬",
	Sad:          "😢",
	Disappointed: "🙁",
}

// DefaultMoods returns the built-in table. It is shared; callers must treat
// it as read-only.
func DefaultMoods() MoodMap {
	return defaultMoods
}

// Lookup resolves one grapheme cluster.
func (m MoodMap) Lookup(cluster string) (Mood, bool) {
	mood, ok := m[strings.ReplaceAll(cluster, variationSelector, "")]
	return mood, ok
}

// Moods lists every category in display order.
func Moods() []Mood {
	return []Mood{Love, Kissing, Hug, Support, Happy, Celebrate, Angry, Sad, Disappointed}
}

func Icon(m Mood) string {
	return icons[m]
}

// Lexicon bundles the static tables handed to every analysis call.
type Lexicon struct {
	StopWords *StopWords
	Moods     MoodMap
}

func Default() Lexicon {
	return Lexicon{StopWords: DefaultStopWords(), Moods: DefaultMoods()}
}
