package domain

// Action is a verb understood by the service manager.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
)

// ParseAction accepts exactly start, stop or restart.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionStart, ActionStop, ActionRestart:
		return Action(s), true
	default:
		return "", false
	}
}
