package domain

// Well-known record fields shared by every harvested unit.
const (
	FieldURL      = "url"
	FieldRole     = "role"
	FieldLabel    = "label"
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldMimetype = "mimetype"
)

// GuestRole is the single role attached to records from public repositories.
const GuestRole = "Rguest"

// Repository describes one entry of the repository catalog. It lives only for
// the duration of processing that repository.
type Repository struct {
	Owner         string
	Name          string
	Branch        string
	IssueCount    int
	PullCount     int
	Private       bool
	Collaborators []string
}

// FullName returns the owner/name identity used in logs and failure reports.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// RunLabels holds the category labels fetched once per harvest run from the
// service's plugin-info endpoint. Labels may be empty strings when the
// endpoint is unreachable.
type RunLabels struct {
	Source string
	Issue  string
	Wiki   string
}

// Record is the uniform output unit handed to the RecordSink. It always
// carries url, role and label, plus kind-specific fields such as content,
// title or whatever the extractor produced.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StatsAction marks a point in a unit's processing lifecycle.
type StatsAction string

const (
	StatsPrepared  StatsAction = "prepared"
	StatsFinished  StatsAction = "finished"
	StatsException StatsAction = "exception"
)

// StatsKey correlates the begin/record/done lifecycle events of one unit.
// It is keyed by the unit's canonical view URL and discarded once the unit
// finishes.
type StatsKey struct {
	URL string
}

// Failure captures one failed unit for audit bookkeeping.
type Failure struct {
	ErrorType  string `json:"error_type"`
	URL        string `json:"url"`
	Repository string `json:"repository"`
	Message    string `json:"message"`
}

// Issue is the decoded body of one issue resource.
type Issue struct {
	Title string
	Body  string
}
