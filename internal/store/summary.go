package store

import "time"

// SlideSummary aggregates the log for one slide.
type SlideSummary struct {
	Slide       int
	Visits      int
	Retries     int // incorrect outcomes
	Completions int
	Failures    int // content load failures
}

// LogSummary aggregates the whole story log.
type LogSummary struct {
	Sessions int
	Resets   int
	LastSeen time.Time
	Slides   []SlideSummary
}

// Summarize folds events into per-slide counters. total is the slide count;
// events for slides outside [0, total) are ignored.
func Summarize(events []EventRecord, total int) LogSummary {
	sum := LogSummary{Slides: make([]SlideSummary, total)}
	for i := range sum.Slides {
		sum.Slides[i].Slide = i
	}

	sessions := make(map[string]bool)
	for _, e := range events {
		if e.SessionID != "" {
			sessions[e.SessionID] = true
		}
		if e.Timestamp.After(sum.LastSeen) {
			sum.LastSeen = e.Timestamp
		}
		if e.Kind == EventReset {
			sum.Resets++
			continue
		}
		if e.Slide < 0 || e.Slide >= total {
			continue
		}
		s := &sum.Slides[e.Slide]
		switch e.Kind {
		case EventNavigate:
			s.Visits++
		case EventLoadFailed:
			s.Failures++
		case EventComplete:
			s.Completions++
		case EventOutcome:
			if e.Status == "incorrect" {
				s.Retries++
			}
		}
	}
	sum.Sessions = len(sessions)
	return sum
}
