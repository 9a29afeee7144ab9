package bank

// Category is the exam domain a question belongs to.
type Category string

const (
	CategoryHardware        Category = "Hardware"
	CategoryNetwork         Category = "Network"
	CategorySecurity        Category = "Security"
	CategoryTroubleshooting Category = "Troubleshooting"
)

// CategoryMixed is the filter value that selects every category.
// It is not a valid category for an individual question.
const CategoryMixed = "Mixed"

// Categories lists all valid question categories in display order.
var Categories = []Category{
	CategoryHardware,
	CategoryNetwork,
	CategorySecurity,
	CategoryTroubleshooting,
}

// Difficulty is the rated difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"

	// DifficultyMixed selects every difficulty when filtering. Questions
	// themselves always carry a concrete difficulty.
	DifficultyMixed Difficulty = "Mixed"
)

// Difficulties lists the concrete question difficulties.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Option is one selectable answer for a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single multiple-choice question. Questions are immutable
// once loaded from the bank.
type Question struct {
	ID              int        `json:"id"`
	Category        Category   `json:"category"`
	Difficulty      Difficulty `json:"difficulty"`
	Text            string     `json:"text"`
	Options         []Option   `json:"options"`
	CorrectAnswerID string     `json:"correctAnswerId"`
	Explanation     string     `json:"explanation"`
}

// Option returns the option with the given id, or nil if absent.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// IsCorrect reports whether optionID is the correct answer.
func (q *Question) IsCorrect(optionID string) bool {
	return optionID != "" && optionID == q.CorrectAnswerID
}
