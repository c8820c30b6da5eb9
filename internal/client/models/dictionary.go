package models

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// GestureEntry is one sign in the dictionary.
type GestureEntry struct {
	ID          string     `json:"id"`
	Word        string     `json:"word"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	VideoURL    string     `json:"videoUrl,omitempty"`
	Favorite    bool       `json:"isFavorite"`
}
