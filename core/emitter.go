package core

// Emitter receives console statements in document order.
//
// Every Group call is balanced by exactly one GroupEnd call.
type Emitter interface {
	// Log writes a single statement made of the given tokens.
	Log(items []LogItem)

	// Group opens a collapsed group whose header is made of the given tokens.
	Group(items []LogItem)

	// GroupEnd closes the innermost open group.
	GroupEnd()
}
