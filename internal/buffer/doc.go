// Package buffer implements the editable text held by a document.
//
// Coordinates are 0-based (Row, Col) in runes. The buffer stores lines split
// on '\n' only, so Text returns exactly the string the buffer was created from
// until an edit is applied.
package buffer
