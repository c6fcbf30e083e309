package document

import (
	"fmt"
	"slices"
)

// Manager owns the ordered set of open documents and the active tab. It always
// holds at least one document.
type Manager struct {
	docs   []*Document
	active int
}

// NewManager returns a manager holding one empty document.
func NewManager() *Manager {
	return &Manager{docs: []*Document{New()}}
}

// Len returns the number of open documents.
func (m *Manager) Len() int { return len(m.docs) }

// ActiveIndex returns the position of the active document.
func (m *Manager) ActiveIndex() int { return m.active }

// Active returns the active document.
func (m *Manager) Active() *Document {
	if len(m.docs) == 0 || m.active < 0 || m.active >= len(m.docs) {
		panic(fmt.Sprintf("document: active index %d out of range [0,%d)", m.active, len(m.docs)))
	}
	return m.docs[m.active]
}

// At returns the document at index, or nil when out of range.
func (m *Manager) At(index int) *Document {
	if index < 0 || index >= len(m.docs) {
		return nil
	}
	return m.docs[index]
}

// Documents returns the documents in tab order.
func (m *Manager) Documents() []*Document {
	out := make([]*Document, len(m.docs))
	copy(out, m.docs)
	return out
}

// Find returns the document with id and its position.
func (m *Manager) Find(id ID) (*Document, int) {
	for i, doc := range m.docs {
		if doc.ID == id {
			return doc, i
		}
	}
	return nil, -1
}

// FindByPath returns every document backed by path.
func (m *Manager) FindByPath(path string) []*Document {
	if path == "" {
		return nil
	}
	var out []*Document
	for _, doc := range m.docs {
		if doc.Path == path {
			out = append(out, doc)
		}
	}
	return out
}

// Paths returns the distinct backing paths of all documents.
func (m *Manager) Paths() []string {
	seen := make(map[string]struct{}, len(m.docs))
	paths := make([]string, 0, len(m.docs))
	for _, doc := range m.docs {
		if doc.Path == "" {
			continue
		}
		if _, ok := seen[doc.Path]; ok {
			continue
		}
		seen[doc.Path] = struct{}{}
		paths = append(paths, doc.Path)
	}
	return paths
}

// Select activates the tab at index. Out-of-range indices are ignored.
func (m *Manager) Select(index int) bool {
	if index < 0 || index >= len(m.docs) || index == m.active {
		return false
	}
	m.active = index
	return true
}

// Next activates the following tab, wrapping around.
func (m *Manager) Next() bool {
	if len(m.docs) < 2 {
		return false
	}
	m.active = (m.active + 1) % len(m.docs)
	return true
}

// Prev activates the preceding tab, wrapping around.
func (m *Manager) Prev() bool {
	if len(m.docs) < 2 {
		return false
	}
	m.active = (m.active - 1 + len(m.docs)) % len(m.docs)
	return true
}

// OpenNewTab appends an empty document and activates it.
func (m *Manager) OpenNewTab() *Document {
	doc := New()
	m.docs = append(m.docs, doc)
	m.active = len(m.docs) - 1
	return doc
}

// CloseTab removes the document at index. Closing the last remaining tab
// replaces it with a fresh empty document.
func (m *Manager) CloseTab(index int) bool {
	if index < 0 || index >= len(m.docs) {
		return false
	}
	if len(m.docs) == 1 {
		m.docs[0] = New()
		m.active = 0
		return true
	}
	m.docs = slices.Delete(m.docs, index, index+1)
	if index < m.active {
		m.active--
	}
	if m.active > len(m.docs)-1 {
		m.active = len(m.docs) - 1
	}
	return true
}

// LabelFor returns the tab caption for index.
func (m *Manager) LabelFor(index int) string {
	doc := m.At(index)
	if doc == nil {
		return ""
	}
	return doc.Label()
}
