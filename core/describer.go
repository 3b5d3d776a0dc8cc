package core

// Visibility is the access level of a member.
type Visibility int

const (
	// VisibilityNone means the member model has no access levels; no label is shown.
	VisibilityNone Visibility = iota
	VisibilityPublic
	VisibilityProtected
	VisibilityPrivate
)

// String returns the label shown in front of a member name.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	default:
		return ""
	}
}

// Member is a single named member of a composite value.
type Member struct {
	Name       string
	Visibility Visibility
	Static     bool
	Value      any
}

// Description is the composite view of a value: its type, an optional display
// string, the parent levels it builds on and the members declared at its own level.
type Description struct {
	TypeName string

	// Display is shown in front of the type name when HasDisplay is set.
	Display    string
	HasDisplay bool

	// Parents are the values of the parent levels, outermost first. Each one is
	// rendered as its own level, so it may itself have parents.
	Parents []any

	// Members declared at this level, static and non-static, in declaration order.
	Members []Member
}

// IsEmpty reports whether the description has neither parent levels nor members.
func (d Description) IsEmpty() bool {
	return len(d.Parents) == 0 && len(d.Members) == 0
}

// Describer is an optional interface for types that describe themselves instead
// of being inspected by reflection. Values implementing it are always rendered
// as composite values.
type Describer interface {
	ConsoleDescription() Description
}
