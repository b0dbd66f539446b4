package notify

import "encoding/json"

const (
	EventNewRFQ      = "newRFQ"
	EventNewBid      = "newBid"
	EventBidAccepted = "bidAccepted"
	EventBidRejected = "bidRejected"
)

// Event is the payload pushed over the per-user notification channel.
// Delivery is best-effort; nothing in the request path waits on it.
type Event struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

func (e Event) Marshal() []byte {
	payload, err := json.Marshal(e)
	if err != nil {
		return []byte(`{}`)
	}
	return payload
}
