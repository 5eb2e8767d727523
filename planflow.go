package planflow

// SubStepStatus tracks how far along a sub-step is.
type SubStepStatus string

const (
	StatusNotStarted SubStepStatus = "Not Started"
	StatusInProgress SubStepStatus = "In Progress"
	StatusCompleted  SubStepStatus = "Completed"
)

// Point is a coordinate on the sub-step canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Canvas is the bounded coordinate space sub-steps are positioned in.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Attachment is a captured file, stored inline as a data URL.
type Attachment struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	DataURL string `json:"dataUrl"`
}

// Matrix is a small header/rows table embedded in reports and details.
type Matrix struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ActionItemReport records the outcome of an executed action item.
type ActionItemReport struct {
	Notes       string       `json:"notes"`
	Attachments []Attachment `json:"attachments,omitempty"`
	MatrixData  *Matrix      `json:"matrixData,omitempty"`
}

// ActionItem is a checkbox-level unit of work owned by a sub-step.
// It is deleted together with its parent.
type ActionItem struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	Completed     bool              `json:"completed"`
	DueDate       string            `json:"dueDate,omitempty"`
	CompletedDate string            `json:"completedDate,omitempty"`
	Responsible   string            `json:"responsible,omitempty"`
	Report        *ActionItemReport `json:"report,omitempty"`
}

// SubStep is a node in a task's planning graph.
// Position is nil until the sub-step has been laid out; geometry code
// treats a nil position as the origin.
// NextSubStepIDs has set semantics and never contains the sub-step's own ID.
type SubStep struct {
	ID             string        `json:"id"`
	Text           string        `json:"text"`
	Notes          string        `json:"notes,omitempty"`
	Position       *Point        `json:"position,omitempty"`
	NextSubStepIDs []string      `json:"nextSubStepIds,omitempty"`
	Status         SubStepStatus `json:"status,omitempty"`
	Responsible    string        `json:"responsible,omitempty"`
	DueDate        string        `json:"dueDate,omitempty"`
	ActionItems    []ActionItem  `json:"actionItems,omitempty"`
	Attachments    []Attachment  `json:"attachments,omitempty"`
}

// HasNext reports whether targetID is in the sub-step's adjacency set.
func (s SubStep) HasNext(targetID string) bool {
	for _, id := range s.NextSubStepIDs {
		if id == targetID {
			return true
		}
	}
	return false
}

// DecisionStatus marks whether a question has been settled.
type DecisionStatus string

const (
	DecisionDecided   DecisionStatus = "decided"
	DecisionUndecided DecisionStatus = "undecided"
)

// Decision is a logged project decision attached to a task.
type Decision struct {
	ID        string         `json:"id"`
	Question  string         `json:"question"`
	Decision  string         `json:"decision,omitempty"`
	Reasoning string         `json:"reasoning,omitempty"`
	Date      string         `json:"date,omitempty"`
	Status    DecisionStatus `json:"status"`
}

// NumericalTargetStatus tracks whether a numerical target was met.
type NumericalTargetStatus string

const (
	TargetPending  NumericalTargetStatus = "pending"
	TargetAchieved NumericalTargetStatus = "achieved"
	TargetMissed   NumericalTargetStatus = "missed"
)

// NumericalTarget is a measurable goal attached to a task.
type NumericalTarget struct {
	Description  string                `json:"description"`
	TargetValue  string                `json:"targetValue"`
	Unit         string                `json:"unit"`
	CurrentValue string                `json:"currentValue,omitempty"`
	TestNotes    string                `json:"testNotes,omitempty"`
	Status       NumericalTargetStatus `json:"status,omitempty"`
}

// TaskDetails is the extended planning record owned by a task: the
// sub-step graph plus its sibling form fields. This is the snapshot
// the editor pushes back to the task store.
type TaskDetails struct {
	SubSteps        SubSteps         `json:"subSteps"`
	Resources       string           `json:"resources"`
	Responsible     string           `json:"responsible"`
	Notes           string           `json:"notes"`
	DueDate         string           `json:"dueDate,omitempty"`
	NumericalTarget *NumericalTarget `json:"numericalTarget,omitempty"`
	ResourceMatrix  *Matrix          `json:"resourceMatrix,omitempty"`
	Attachments     []Attachment     `json:"attachments,omitempty"`
	Decisions       []Decision       `json:"decisions,omitempty"`
	Canvas          *Canvas          `json:"subStepCanvasSize,omitempty"`
}

// ActionItemRow pairs an action item with its owning sub-step, for
// flat table views across the graph.
type ActionItemRow struct {
	SubStep    SubStep    `json:"subStep"`
	ActionItem ActionItem `json:"actionItem"`
}

// ActionItemProgress returns completed and total action item counts
// across all sub-steps.
func (d TaskDetails) ActionItemProgress() (completed, total int) {
	for _, s := range d.SubSteps {
		for _, ai := range s.ActionItems {
			total++
			if ai.Completed {
				completed++
			}
		}
	}
	return completed, total
}

// ActionItemRows flattens action items into rows. With an empty
// subStepID it covers the whole graph, otherwise only the named sub-step.
func (d TaskDetails) ActionItemRows(subStepID string) []ActionItemRow {
	rows := []ActionItemRow{}
	for _, s := range d.SubSteps {
		if subStepID != "" && s.ID != subStepID {
			continue
		}
		for _, ai := range s.ActionItems {
			rows = append(rows, ActionItemRow{SubStep: s, ActionItem: ai})
		}
	}
	return rows
}
