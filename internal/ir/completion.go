package ir

// Completion is a ranked, ready-to-insert template suggestion.
type Completion struct {
	Label        string  `json:"label"`         // display form, e.g. "fred really likes *an object*"
	InsertText   string  `json:"insert_text"`   // snippet with ${n:...} placeholders
	FilterText   string  `json:"filter_text"`   // text the editor filters against
	ReplaceRange Range   `json:"replace_range"` // literal start to cursor
	Rank         int     `json:"rank"`          // 0 = best
	Score        float64 `json:"score"`         // match score in [0,1]
}

// SemanticCategory classifies a highlighted term.
type SemanticCategory string

const (
	CategoryVariable SemanticCategory = "variable" // "a person", "the person"
	CategoryConstant SemanticCategory = "constant" // "fred bloggs"
)

// SemanticRange marks a term inside a literal.
type SemanticRange struct {
	Line     int              `json:"line"`
	Column   int              `json:"column"`
	Length   int              `json:"length"`
	Category SemanticCategory `json:"category"`
}

// Hover describes the literal under the cursor.
type Hover struct {
	Range    Range  `json:"range"`
	Markdown string `json:"markdown"`
}
