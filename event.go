package elog

// nullMessage is emitted when an event carries neither a message nor an error.
const nullMessage = "null"

// Event is a single log request. It is a plain value and is never mutated by
// the pipeline. Empty Tag and Message mean "not supplied"; a nil Err means no
// error is attached.
type Event struct {
	Level   Level
	Tag     string
	Message string
	Err     error
}

// Text returns the message that interceptors see and the message stage prints:
// Message when set, otherwise the error text, otherwise "null".
func (e Event) Text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		if s := e.Err.Error(); s != "" {
			return s
		}
	}
	return nullMessage
}

// NewEvent is a convenience constructor mirroring Emit's argument order.
func NewEvent(level Level, tag, message string, err error) Event {
	return Event{Level: level, Tag: tag, Message: message, Err: err}
}
