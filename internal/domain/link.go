package domain

import "time"

// Link is one correspondence record: the RDF URI and the Wikibase entity it
// is represented by. At most one link exists per URI; once recorded it is
// authoritative and never overwritten within a run.
type Link struct {
	URI       string
	Entity    EntityID
	CreatedAt time.Time
}
