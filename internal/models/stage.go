package models

// Pipeline stages, in board order. "Closed Won" and "Closed Lost" are terminal.
const (
	StageLead        = "Lead"
	StageQualified   = "Qualified"
	StageProposal    = "Proposal"
	StageNegotiation = "Negotiation"
	StageClosedWon   = "Closed Won"
	StageClosedLost  = "Closed Lost"
)

var Stages = []string{
	StageLead,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

var validStages = map[string]bool{
	StageLead:        true,
	StageQualified:   true,
	StageProposal:    true,
	StageNegotiation: true,
	StageClosedWon:   true,
	StageClosedLost:  true,
}

func IsValidStage(s string) bool {
	return validStages[s]
}

// IsTerminalStage reports whether a deal in this stage has left the open pipeline.
func IsTerminalStage(s string) bool {
	return s == StageClosedWon || s == StageClosedLost
}
