package room

type RematchOutcome int

const (
	RematchIgnored RematchOutcome = iota // duplicate request
	RematchPending                       // first request, waiting for the other side
	RematchAgreed                        // both sides asked, requests cleared
)

func (o RematchOutcome) String() string {
	switch o {
	case RematchIgnored:
		return "ignored"
	case RematchPending:
		return "pending"
	case RematchAgreed:
		return "agreed"
	}
	return "unknown"
}

// Rematch tracks which participants asked for a new game.
type Rematch struct {
	requests []string
}

func (r *Rematch) Request(connID string) RematchOutcome {
	for _, id := range r.requests {
		if id == connID {
			return RematchIgnored
		}
	}
	r.requests = append(r.requests, connID)
	if len(r.requests) >= 2 {
		r.requests = nil
		return RematchAgreed
	}
	return RematchPending
}

func (r *Rematch) Decline() { r.requests = nil }

// Cancel clears all requests and reports whether any were pending.
func (r *Rematch) Cancel() bool {
	pending := len(r.requests) > 0
	r.requests = nil
	return pending
}

func (r *Rematch) Pending() []string {
	return append([]string{}, r.requests...)
}
