// Package domain holds the lead pipeline vocabulary shared by the leads and
// automation modules.
package domain

// Status is a lead's stored pipeline status. The pipeline is ordered
// new → contacted → qualified → proposal → negotiating → won, with lost
// reachable from any non-terminal status.
type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusQualified   Status = "qualified"
	StatusProposal    Status = "proposal"
	StatusNegotiating Status = "negotiating"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
)

// OutreachStage is the coarse bucket the automation tool routes on. It is
// derived from Status at read time and never persisted.
type OutreachStage string

const (
	StageCold          OutreachStage = "cold"
	StageNoReply       OutreachStage = "no_reply"
	StagePositiveReply OutreachStage = "positive_reply"
	StageNegativeReply OutreachStage = "negative_reply"
)

// statuses lists the pipeline in its intended order.
var statuses = []Status{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusProposal,
	StatusNegotiating,
	StatusWon,
	StatusLost,
}

var stageByStatus = map[Status]OutreachStage{
	StatusNew:         StageCold,
	StatusContacted:   StageNoReply,
	StatusQualified:   StagePositiveReply,
	StatusProposal:    StagePositiveReply,
	StatusNegotiating: StagePositiveReply,
	StatusWon:         StagePositiveReply,
	StatusLost:        StageNegativeReply,
}

// Statuses returns the pipeline statuses in order. The returned slice must
// not be mutated.
func Statuses() []Status {
	return statuses
}

// IsValid reports whether s is a known pipeline status.
func (s Status) IsValid() bool {
	_, ok := stageByStatus[s]
	return ok
}

// IsTerminal reports whether s ends the pipeline for outreach purposes.
func (s Status) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

// ResolveStage maps a stored pipeline status to the outreach stage consumed
// by the automation tool. Unknown statuses resolve to cold so that malformed
// rows still receive a cold-outreach attempt instead of dropping out of the
// feed; callers that care should check IsValid and log.
func ResolveStage(s Status) OutreachStage {
	if stage, ok := stageByStatus[s]; ok {
		return stage
	}
	return StageCold
}
