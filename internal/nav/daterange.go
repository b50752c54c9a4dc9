package nav

import (
	"time"

	"twilly/internal/prompt"
)

// StartDateWindow is how far back the start date of a range may reach.
const StartDateWindow = 365

// SelectDate asks for a date within r, or any date when r is nil.
// A date outside r is never returned; the question is asked again.
func SelectDate(p prompt.Prompter, label string, r *prompt.DateRange) (prompt.Answer[time.Time], error) {
	for {
		answer, err := p.Date(label, r)
		if err != nil || answer.IsCancelled() {
			return answer, err
		}
		d, _ := answer.Get()
		if r == nil || r.Contains(d) {
			return prompt.Answered(prompt.Day(d)), nil
		}
	}
}

// SelectDateRange asks for a start date in the last StartDateWindow days and
// then an end date between the start date and now.
//
// Cancelling the start date skips the end date. Cancelling the end date
// cancels the whole range; a partial range is never returned.
func SelectDateRange(p prompt.Prompter, now time.Time) (prompt.Answer[prompt.DateRange], error) {
	startRange, err := prompt.NewDateRange(now.AddDate(0, 0, -StartDateWindow), now)
	if err != nil {
		return prompt.Cancelled[prompt.DateRange](), err
	}
	startAnswer, err := SelectDate(p, "Choose a start date:", &startRange)
	if err != nil {
		return prompt.Cancelled[prompt.DateRange](), err
	}
	start, ok := startAnswer.Get()
	if !ok {
		return prompt.Cancelled[prompt.DateRange](), nil
	}

	endRange, err := prompt.NewDateRange(start, now)
	if err != nil {
		return prompt.Cancelled[prompt.DateRange](), err
	}
	endAnswer, err := SelectDate(p, "Choose an end date:", &endRange)
	if err != nil {
		return prompt.Cancelled[prompt.DateRange](), err
	}
	end, ok := endAnswer.Get()
	if !ok {
		return prompt.Cancelled[prompt.DateRange](), nil
	}

	return prompt.Answered(prompt.DateRange{Min: start, Max: end}), nil
}
