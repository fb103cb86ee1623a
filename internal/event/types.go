package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Record is one row of source data keyed by normalized column name.
type Record map[string]string

// Position is the laid-out centre of an event circle in chart pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is a record that survived normalization.
//
// RawTime, Magnitude and Fields come from the source row. Instant is derived
// by ParseInstant. TargetY, Radius and Position are filled in by the pipeline
// and the layout engine; Position stays nil until layout runs.
type Event struct {
	ID        string
	Seq       int // input row index, the tie-breaker for equal instants
	RawTime   string
	Magnitude float64
	Instant   time.Time
	Fields    Record

	TargetY  float64
	Radius   float64
	Position *Position
}

// Columns names the source columns the normalizer reads.
// Names are matched after header normalization (see ingest.NormalizeHeader).
type Columns struct {
	Time      string `yaml:"time" json:"time"`
	Magnitude string `yaml:"magnitude" json:"magnitude"`
}

// DefaultColumns returns the column names used when none are configured.
func DefaultColumns() Columns {
	return Columns{Time: "time", Magnitude: "magnitude"}
}

// eventNamespace scopes event IDs so they never collide with other UUIDv5 users.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/aftershock/event"))

// NewID derives a deterministic event ID from the row index and raw values.
// The same input row always yields the same ID, which keeps layout documents
// diffable across runs.
func NewID(seq int, rawTime, rawMagnitude string) string {
	key := strconv.Itoa(seq) + "|" + rawTime + "|" + rawMagnitude
	return uuid.NewSHA1(eventNamespace, []byte(key)).String()
}
