package redis

const (
	// KeyActions is the list of recorded control actions (newest first)
	KeyActions = "hostdash:actions"
	// KeyActionCounts is the hash of per-service action counters
	KeyActionCounts = "hostdash:actions:count"
)

// ActionsKey returns the Redis key for the action list
func ActionsKey() string {
	return KeyActions
}

// ActionCountsKey returns the Redis key for the per-service counters
func ActionCountsKey() string {
	return KeyActionCounts
}
