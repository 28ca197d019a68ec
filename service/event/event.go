package event

import "time"

// Context carries routing metadata for an engine event.
type Context struct {
	EventType   string `json:"eventType"`
	Scenario    string `json:"scenario,omitempty"`
	Process     string `json:"process,omitempty"`
	Resource    string `json:"resource,omitempty"`
	TimeTakenMs int    `json:"timeTakenMs,omitempty"`
}

// Event is a typed engine notification: a mutation applied to the resource
// model, a completed detection pass or an applied resolution plan.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event carrying the supplied payload.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
