package model

// Envelope is the backend's uniform response shape. Single-item movie and
// category reads omit status/message; every mutating operation sets them.
type Envelope[T any] struct {
	Payload T      `json:"payload"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	StatusCreated = "CREATED"
	StatusOK      = "OK"
)

func (e Envelope[T]) Created() bool { return e.Status == StatusCreated }

func (e Envelope[T]) OK() bool { return e.Status == StatusOK }
