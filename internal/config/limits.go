package config

const (
	// MaxHistoryTurns is the per-conversation history cap. Whole turns
	// are dropped from the oldest end once the log exceeds it.
	MaxHistoryTurns = 20

	// MaxToolRounds bounds the tool-calling loop per utterance. The
	// model is re-asked after each round of executions, so a run of 30
	// separate registrations in one message still fits.
	MaxToolRounds = 30

	// MaxTrackedConversations bounds the in-memory conversation map.
	// Least-recently-used conversations are evicted past this point.
	MaxTrackedConversations = 1000

	// DefaultListLimit is how many records list tools return when the
	// model doesn't ask for a specific count.
	DefaultListLimit = 10
)
