package controls

import "github.com/spektr-org/cinelens/engine"

// Options is the control metadata a frontend needs to draw the sidebar.
type Options struct {
	Title     string      `json:"title"`
	Duration  Select      `json:"duration"`
	MinRating Slider      `json:"minRating"`
	MinVotes  NumberInput `json:"minVotes"`
	Genre     MultiSelect `json:"genre"`
}

// Choice is one option of a select control.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Select is a single-choice control.
type Select struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []Choice `json:"options"`
	Default string   `json:"default"`
}

// Slider is a bounded continuous control.
type Slider struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// NumberInput is a lower-bounded stepped control.
type NumberInput struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// MultiSelect is a set control.
type MultiSelect struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
	Default []string `json:"default"`
}

// Describe returns the sidebar controls for a dataset with allGenres.
func Describe(allGenres []string) Options {
	choices := make([]Choice, len(engine.DurationBuckets))
	for i, b := range engine.DurationBuckets {
		choices[i] = Choice{Value: string(b), Label: b.Label()}
	}

	genres := append([]string{}, allGenres...)

	return Options{
		Title: "Filter Movies",
		Duration: Select{
			Key:     KeyDuration,
			Label:   "Select Duration (Hours)",
			Options: choices,
			Default: string(engine.DurationAll),
		},
		MinRating: Slider{
			Key:   KeyMinRating,
			Label: "Minimum IMDb Rating",
			Min:   RatingMin,
			Max:   RatingMax,
			Step:  RatingStep,
		},
		MinVotes: NumberInput{
			Key:   KeyMinVotes,
			Label: "Minimum Votes",
			Min:   0,
			Step:  VotesStep,
		},
		Genre: MultiSelect{
			Key:     KeyGenre,
			Label:   "Select Genre(s)",
			Options: genres,
			Default: genres,
		},
	}
}
