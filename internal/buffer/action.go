package buffer

// ActionKind enumerates the operations a Buffer accepts.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionInsert
	ActionDeleteBackward
	ActionDeleteForward
	ActionDeleteWordBackward
	ActionKillLine
	ActionMove
)

// Move selects the direction and unit of a cursor motion.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveUp
	MoveDown
	MoveWordLeft
	MoveWordRight
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
	MovePageUp
	MovePageDown
)

// Action is a single editing or navigation request.
type Action struct {
	Kind ActionKind
	Text string
	Move Move
	// Count is the row count for page moves.
	Count int
}

// Insert returns an action inserting text at the cursor.
func Insert(text string) Action { return Action{Kind: ActionInsert, Text: text} }

// Newline returns an action splitting the line at the cursor.
func Newline() Action { return Insert("\n") }

// DeleteBackward returns a backspace action.
func DeleteBackward() Action { return Action{Kind: ActionDeleteBackward} }

// DeleteForward returns a delete-key action.
func DeleteForward() Action { return Action{Kind: ActionDeleteForward} }

// DeleteWordBackward removes the word before the cursor.
func DeleteWordBackward() Action { return Action{Kind: ActionDeleteWordBackward} }

// KillLine removes text from the cursor to the end of the line.
func KillLine() Action { return Action{Kind: ActionKillLine} }

// Motion returns a cursor movement action.
func Motion(m Move) Action { return Action{Kind: ActionMove, Move: m} }

// Page returns a page movement of rows lines.
func Page(m Move, rows int) Action { return Action{Kind: ActionMove, Move: m, Count: rows} }

// IsEdit reports whether the action may change the text.
func (a Action) IsEdit() bool {
	switch a.Kind {
	case ActionInsert, ActionDeleteBackward, ActionDeleteForward, ActionDeleteWordBackward, ActionKillLine:
		return true
	default:
		return false
	}
}
