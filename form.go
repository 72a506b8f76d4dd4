package fieldarray

// ValidateMode selects how a form validation pass treats its fields.
type ValidateMode int

const (
	// ValidateSilent refreshes validity without surfacing new error messages.
	ValidateSilent ValidateMode = iota
	// ValidateValidatedOnly only revalidates fields that already carry
	// validation state.
	ValidateValidatedOnly
	// ValidateForce validates every field and surfaces every error.
	ValidateForce
)

func (m ValidateMode) String() string {
	switch m {
	case ValidateSilent:
		return "silent"
	case ValidateValidatedOnly:
		return "validated-only"
	case ValidateForce:
		return "force"
	default:
		return "unknown"
	}
}

// Change describes one value path touched by a mutation. A nil OldValue or
// NewValue stands for an element that did not exist on that side.
type Change struct {
	Path     string `json:"path" yaml:"path"`
	OldValue any    `json:"oldValue" yaml:"oldValue"`
	NewValue any    `json:"newValue" yaml:"newValue"`
}

// Form is the form state a Controller synchronizes with. Implementations are
// expected to be driven by a single logical owner.
type Form interface {
	// GetValue returns the value stored at path and whether anything is
	// stored there.
	GetValue(path string) (any, bool)
	// SetValue replaces the value stored at path.
	SetValue(path string, value any)
	// FieldArrays returns the registry of active controllers.
	FieldArrays() *Registry
	// Validate schedules a validation pass. It must not block on validation.
	Validate(mode ValidateMode)
	// StageInitialValue records the value path resets to.
	StageInitialValue(path string, value any)
	// UnsetInitialValue clears the value recorded for path.
	UnsetInitialValue(path string)
	// DestroyPath drops all per-field state at and under path.
	DestroyPath(path string)
	// NotifyValuesChanged receives the changes of a single mutation.
	NotifyValuesChanged(changes []Change)
	// OnSettle registers fn to run each time pending value changes settle.
	// The returned function unsubscribes fn.
	OnSettle(fn func()) (cancel func())
}
