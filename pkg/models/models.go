package models

import (
	"encoding/json"
	"math"
	"time"
)

// ── Categories ───────────────────────────────────────────────

// Category groups tools on the dashboard. The wire value is the display label.
type Category string

const (
	CategoryUnitConverter     Category = "Unit Converters"
	CategoryCostEstimator     Category = "Cost Estimators"
	CategoryMaterialEstimator Category = "Material Estimators"
	CategorySteelRebar        Category = "Steel & Rebar"
	CategoryRateAnalysis      Category = "Rate Analysis"
	CategoryDesignRCC         Category = "Design of RCC"
	CategoryBBS               Category = "Bar Bending Schedule"
	CategorySoilFoundation    Category = "Soil & Foundation"
	CategoryLoadCalculations  Category = "Load Calculations"
	CategoryLandArea          Category = "Land Area"
	CategoryProjectManagement Category = "Project Management"
	CategoryUtilities         Category = "General Utilities"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll Category = "All"

// AllCategories returns every Category in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryUnitConverter,
		CategoryCostEstimator,
		CategoryMaterialEstimator,
		CategorySteelRebar,
		CategoryRateAnalysis,
		CategoryDesignRCC,
		CategoryBBS,
		CategorySoilFoundation,
		CategoryLoadCalculations,
		CategoryLandArea,
		CategoryProjectManagement,
		CategoryUtilities,
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryCount is one entry of the category sidebar.
type CategoryCount struct {
	Category Category `json:"category"`
	Tools    int      `json:"tools"`
}

// ── Fields ───────────────────────────────────────────────────

// FieldType describes the input control for a Field.
type FieldType string

const (
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
	FieldText   FieldType = "text"
)

// Field is one declared input slot on a Tool.
type Field struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Unit    string    `json:"unit,omitempty"`
	Options []string  `json:"options,omitempty"`

	// Default seeds numeric fields. DefaultText seeds select/text fields and
	// is coerced to a number when the Input State is built.
	Default     float64 `json:"default"`
	DefaultText string  `json:"default_text,omitempty"`
}

// ── Tools ────────────────────────────────────────────────────

// Inputs is the Input State: field id → current numeric value.
type Inputs map[string]float64

// Clone returns an independent copy of the inputs.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// MarshalJSON writes non-finite values as null.
func (in Inputs) MarshalJSON() ([]byte, error) {
	if in == nil {
		return []byte("null"), nil
	}
	out := make(map[string]*float64, len(in))
	for k, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[k] = nil
			continue
		}
		out[k] = &v
	}
	return json.Marshal(out)
}

// Get returns the value for id. A missing id yields NaN so that an
// unseeded field poisons the arithmetic instead of silently reading 0.
func (in Inputs) Get(id string) float64 {
	v, ok := in[id]
	if !ok {
		return math.NaN()
	}
	return v
}

// Formula is a tool's pure input-to-output transform.
type Formula interface {
	// Kind names the formula variant.
	Kind() string
	// Requires lists the field ids the formula reads.
	Requires() []string
	// Evaluate computes the outputs in display order.
	Evaluate(in Inputs) []Output
}

// Tool is one calculator definition.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Fields      []Field  `json:"fields"`
	Formula     Formula  `json:"-"`
}

// FormulaKind returns the formula variant name, or "" when the tool has none.
func (t Tool) FormulaKind() string {
	if t.Formula == nil {
		return ""
	}
	return t.Formula.Kind()
}

// Field looks up a declared field by id.
func (t Tool) Field(id string) (Field, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// MarshalJSON adds the formula kind to the wire representation.
func (t Tool) MarshalJSON() ([]byte, error) {
	type plain Tool
	return json.Marshal(struct {
		plain
		FormulaKind string `json:"formula,omitempty"`
	}{plain(t), t.FormulaKind()})
}

// ── Results ──────────────────────────────────────────────────

// Output is one labelled result entry.
type Output struct {
	Label   string  `json:"label"`
	Display string  `json:"display"`
	Value   float64 `json:"-"`
	// Numeric is false for classification outputs such as a slab type.
	Numeric bool `json:"-"`
}

// MarshalJSON renders Value as null when it is not finite and omits it for
// textual outputs; encoding/json rejects NaN and Inf outright.
func (o Output) MarshalJSON() ([]byte, error) {
	if !o.Numeric {
		return json.Marshal(struct {
			Label   string `json:"label"`
			Display string `json:"display"`
		}{o.Label, o.Display})
	}
	var value *float64
	if !math.IsNaN(o.Value) && !math.IsInf(o.Value, 0) {
		v := o.Value
		value = &v
	}
	return json.Marshal(struct {
		Label   string   `json:"label"`
		Display string   `json:"display"`
		Value   *float64 `json:"value"`
	}{o.Label, o.Display, value})
}

// Result is the Result State derived from one evaluation.
type Result struct {
	ToolID  string   `json:"tool_id"`
	Outputs []Output `json:"outputs"`
}

// Lookup returns the output with the given label.
func (r Result) Lookup(label string) (Output, bool) {
	for _, o := range r.Outputs {
		if o.Label == label {
			return o, true
		}
	}
	return Output{}, false
}

// ToolDetail is a tool together with its initial Input State.
type ToolDetail struct {
	Tool   Tool   `json:"tool"`
	Inputs Inputs `json:"inputs"`
}

// CategoryListing answers the category sidebar.
type CategoryListing struct {
	All     []Category      `json:"all"`
	Present []CategoryCount `json:"present"`
}

// EvaluateResponse is the Input State actually used and its Result State.
type EvaluateResponse struct {
	Inputs Inputs `json:"inputs"`
	Result Result `json:"result"`
}

// ── Calculator Sessions ──────────────────────────────────────

// CalculatorSession is the wire view of an open calculator.
type CalculatorSession struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	Inputs    Inputs    `json:"inputs"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EvaluateRequest is the body for stateless evaluation. Values may be JSON
// numbers or raw text.
type EvaluateRequest struct {
	Inputs map[string]json.RawMessage `json:"inputs"`
}

// OpenCalculatorRequest opens a calculator session.
type OpenCalculatorRequest struct {
	ToolID string `json:"tool_id"`
}

// EditInputRequest is one edit event on a calculator session.
type EditInputRequest struct {
	Value string `json:"value"`
}

// ── Chat ─────────────────────────────────────────────────────

// Role is the speaker of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the wire view of a chat session.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	Pending   bool      `json:"pending"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatRequest is the body for the stateless chat endpoint.
type ChatRequest struct {
	History []Message `json:"history"`
	Message string    `json:"message"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Reply     string `json:"reply"`
	LatencyMs int64  `json:"latency_ms"`
}

// SendMessageRequest appends a user turn to a conversation.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse is returned after the assistant replied.
type SendMessageResponse struct {
	ConversationID string    `json:"conversation_id"`
	Reply          Message   `json:"reply"`
	TurnCount      int       `json:"turn_count"`
	LatencyMs      int64     `json:"latency_ms"`
	Messages       []Message `json:"messages,omitempty"`
}
