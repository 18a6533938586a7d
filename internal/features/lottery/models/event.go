package models

import "strconv"

// EventType names a lottery state transition
type EventType string

const (
	EventCreated      EventType = "created"
	EventStarted      EventType = "started"
	EventSeeded       EventType = "seeded"
	EventParticipated EventType = "participated"
	EventRevealed     EventType = "revealed"
	EventDeposited    EventType = "deposited"
	EventEnded        EventType = "ended"
	EventCancelled    EventType = "cancelled"

	// EventPayout asks the payment transport to send Amount to Account
	EventPayout EventType = "payout"
)

// Event is published after every committed transition
type Event struct {
	Type      EventType `json:"type"`
	LotteryID string    `json:"lottery_id"`
	Phase     string    `json:"phase"`
	Account   string    `json:"account,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Winner    string    `json:"winner,omitempty"`
	Payment   string    `json:"payment_id,omitempty"`
	Time      uint64    `json:"time"`
}

// Values flattens the event into redis stream fields
func (e Event) Values() map[string]interface{} {
	values := map[string]interface{}{
		"type":       string(e.Type),
		"lottery_id": e.LotteryID,
		"phase":      e.Phase,
		"time":       strconv.FormatUint(e.Time, 10),
	}
	if e.Account != "" {
		values["account"] = e.Account
	}
	if e.Amount != "" {
		values["amount"] = e.Amount
	}
	if e.Winner != "" {
		values["winner"] = e.Winner
	}
	if e.Payment != "" {
		values["payment_id"] = e.Payment
	}
	return values
}
