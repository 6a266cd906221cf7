package amqp

import (
	"encoding/json"
	"time"
)

// PlansIngestedMessage announces a successfully committed plan batch.
// Consumers interested in the rows themselves fetch them from the
// store by period.
type PlansIngestedMessage struct {
	Count     int       `json:"count"`
	Periods   []string  `json:"periods"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPlansIngestedMessage(count int, periods []string) *PlansIngestedMessage {
	return &PlansIngestedMessage{
		Count:     count,
		Periods:   periods,
		Timestamp: time.Now(),
	}
}

func (m *PlansIngestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PlansIngestedMessageFromJSON(data []byte) (*PlansIngestedMessage, error) {
	var msg PlansIngestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
