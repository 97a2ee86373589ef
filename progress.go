package elog

// Progress is the decision an Interception returns for one event.
type Progress uint8

const (
	// ProgressContinue lets the message be printed for this interceptor's turn.
	ProgressContinue Progress = iota
	// ProgressStop withholds the message for this interceptor's turn only.
	// The analytics line is still recorded and later interceptors still run.
	ProgressStop
)

func (p Progress) String() string {
	switch p {
	case ProgressContinue:
		return "CONTINUE"
	case ProgressStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}
