package karma

import "math"

// Karma is a weighted sum over three performance signals:
// session completion rate (max 500), average rating (max 300) and
// response time (max 200). Total is always within [0, 1000].
const (
	completionWeight = 500.0
	reviewWeight     = 300.0
	responseWeight   = 200.0
	maxRating        = 5.0
	maxResponseHours = 24.0
	karmaPerLevel    = 100
)

// StatusCompleted marks an exchange whose sessions finished. Completion is
// recorded by exchange-completion events, not by the swap lifecycle itself.
const StatusCompleted = "completed"

// Calculation is the full karma breakdown for a user
type Calculation struct {
	CompletionRate    float64 `json:"completion_rate"`
	CompletionScore   float64 `json:"completion_score"`
	ReviewScore       float64 `json:"review_score"`
	ResponseTimeScore float64 `json:"response_time_score"`
	TotalKarma        int     `json:"total_karma"`
	Level             int     `json:"level"`
	Badge             string  `json:"badge"`
	Color             string  `json:"color"`
}

// Calculate derives the karma breakdown from a user's rating (0-5), average
// response time in hours and the statuses of their exchange history.
// Out-of-range inputs are clamped so the total stays within [0, 1000].
// Pure and deterministic, no I/O.
func Calculate(rating float64, responseTimeHours float64, statuses []string) Calculation {
	if rating < 0 {
		rating = 0
	} else if rating > maxRating {
		rating = maxRating
	}
	if responseTimeHours < 0 {
		responseTimeHours = 0
	}

	completed := 0
	for _, status := range statuses {
		if status == StatusCompleted {
			completed++
		}
	}

	completionRate := 0.0
	if len(statuses) > 0 {
		completionRate = float64(completed) / float64(len(statuses))
	}
	completionScore := completionRate * completionWeight

	reviewScore := (rating / maxRating) * reviewWeight

	responseTimeScore := math.Max(0, (maxResponseHours-responseTimeHours)/maxResponseHours) * responseWeight

	totalKarma := int(math.Round(completionScore + reviewScore + responseTimeScore))
	level := totalKarma/karmaPerLevel + 1

	return Calculation{
		CompletionRate:    completionRate,
		CompletionScore:   completionScore,
		ReviewScore:       reviewScore,
		ResponseTimeScore: responseTimeScore,
		TotalKarma:        totalKarma,
		Level:             level,
		Badge:             Badge(totalKarma),
		Color:             Color(totalKarma),
	}
}

// tiers are evaluated top-down, first match wins
var tiers = []struct {
	minKarma int
	badge    string
	color    string
}{
	{800, "Master", "purple"},
	{600, "Expert", "cyan"},
	{400, "Skilled", "green"},
	{200, "Learning", "yellow"},
	{0, "Newcomer", "gray"},
}

// Badge returns the display label for a karma total
func Badge(karma int) string {
	for _, tier := range tiers {
		if karma >= tier.minKarma {
			return tier.badge
		}
	}
	return tiers[len(tiers)-1].badge
}

// Color returns the display color token for a karma total
func Color(karma int) string {
	for _, tier := range tiers {
		if karma >= tier.minKarma {
			return tier.color
		}
	}
	return tiers[len(tiers)-1].color
}
