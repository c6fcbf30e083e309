package state

// ItemKind tells the switcher what selecting an item does.
type ItemKind int

const (
	ItemTab ItemKind = iota
	ItemRecent
)

// Item is one switcher entry. For tabs ID is the document id; for recent
// files it is the path.
type Item struct {
	ID     string
	Label  string
	Detail string
	Kind   ItemKind
	Index  int
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
