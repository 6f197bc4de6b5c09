package services

// Event types pushed to live tournament rooms.
const (
	EventTournamentCreated = "tournament.created"
	EventTournamentUpdated = "tournament.updated"
	EventTournamentDeleted = "tournament.deleted"
	EventSessionCreated    = "session.created"
	EventMatchCreated      = "match.created"
	EventMatchUpdated      = "match.updated"
	EventMatchDeleted      = "match.deleted"
	EventScoreUpdated      = "match.score_updated"
)

// EventPublisher pushes a change notification to clients following a tournament.
type EventPublisher interface {
	Publish(tournamentID int, eventType string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(int, string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
