package domain

import "time"

// Outcome is the terminal state of one subject in a run.
type Outcome string

const (
	// OutcomeCreated: the subject had no correspondence record and a new
	// entity was created for it.
	OutcomeCreated Outcome = "created"
	// OutcomeReused: a prior run (or an earlier resolve in this run) already
	// created the entity; no call was made.
	OutcomeReused Outcome = "reused"
	// OutcomeSkipped: the subject's type set has no rule (mapping gap).
	OutcomeSkipped Outcome = "skipped"
)

// Gap records one mapping gap: an RDF element the rule table knows nothing
// about. Gaps are expected as the ontology evolves; they warn, never abort.
type Gap struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate,omitempty"`
	Detail    string `json:"detail"`
}

// NodeResult is the per-subject outcome of a run.
type NodeResult struct {
	URI     string   `json:"uri"`
	Entity  EntityID `json:"entity,omitempty"`
	Outcome Outcome  `json:"outcome"`
	Claims  int      `json:"claims,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// Report is the persisted record of one conversion run.
type Report struct {
	RunID    string `json:"run_id,omitempty"`
	Source   string `json:"source"`
	Endpoint string `json:"endpoint"`
	DryRun   bool   `json:"dry_run,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Nodes []NodeResult `json:"nodes"`
	Gaps  []Gap        `json:"gaps,omitempty"`

	Created int `json:"created"`
	Reused  int `json:"reused"`
	Skipped int `json:"skipped"`
	Claims  int `json:"claims"`
}

// AddNode appends a node result and updates the tallies.
func (r *Report) AddNode(n NodeResult) {
	r.Nodes = append(r.Nodes, n)
	switch n.Outcome {
	case OutcomeCreated:
		r.Created++
	case OutcomeReused:
		r.Reused++
	case OutcomeSkipped:
		r.Skipped++
	}
	r.Claims += n.Claims
}

// AddGap appends a mapping-gap warning.
func (r *Report) AddGap(g Gap) {
	r.Gaps = append(r.Gaps, g)
}
