package activity

// ItemState is how a board element should be drawn.
type ItemState int

const (
	ItemIdle ItemState = iota
	ItemSelected
	ItemLocked   // matched or placed, no longer interactive
	ItemDisabled // not yet interactive
)

// BoardItem is one interactive element.
type BoardItem struct {
	ID     string
	Label  string
	State  ItemState
	Filled string // for targets: label of the locked source
}

// FieldState is one text input with its remembered value.
type FieldState struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
}

// MeterState is a running count toward a target.
type MeterState struct {
	Label  string
	Count  int
	Target int
}

// Board is a snapshot of an activity for rendering.
type Board struct {
	Prompt string
	Action string // label of the action button, if any
	Toggle string // label of the reveal toggle, if any

	Revealed bool

	Choices []BoardItem
	Sources []BoardItem
	Targets []BoardItem
	Fields  []FieldState
	Meter   *MeterState
}

// Interactive reports whether the board has anything besides an action.
func (b Board) Interactive() bool {
	return len(b.Choices) > 0 || len(b.Sources) > 0 || len(b.Fields) > 0 || b.Toggle != ""
}
