package editor

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/tabedit/internal/buffer"
	"github.com/atomicstack/tabedit/internal/fileio"
)

func assertInvariants(t *testing.T, e *Editor) {
	t.Helper()
	docs := e.Documents()
	if docs.Len() < 1 {
		t.Fatalf("expected at least one document, got %d", docs.Len())
	}
	if idx := docs.ActiveIndex(); idx < 0 || idx >= docs.Len() {
		t.Fatalf("active index %d out of range [0,%d)", idx, docs.Len())
	}
}

func singleEffect[T Effect](t *testing.T, effects []Effect) T {
	t.Helper()
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %#v", effects)
	}
	eff, ok := effects[0].(T)
	if !ok {
		t.Fatalf("expected %T, got %#v", *new(T), effects[0])
	}
	return eff
}

func loaded(path, content string) fileio.Loaded {
	return fileio.Loaded{Path: path, Content: content, ModTime: time.Unix(100, 0)}
}

func TestNewLoadsDefaultPath(t *testing.T) {
	e, effects := New(Options{Paths: []string{"/tmp/default.txt"}})
	assertInvariants(t, e)
	if e.Documents().Len() != 1 {
		t.Fatalf("expected one document, got %d", e.Documents().Len())
	}
	doc := e.Active()
	if !doc.Loading {
		t.Fatalf("expected initial document to be loading")
	}
	load := singleEffect[LoadFile](t, effects)
	if load.Doc != doc.ID || load.Path != "/tmp/default.txt" {
		t.Fatalf("unexpected load effect %#v", load)
	}

	out := e.Handle(FileOpened{Doc: doc.ID, Result: loaded("/tmp/default.txt", "hello\nworld")})
	if doc.Loading {
		t.Fatalf("expected loading to clear after completion")
	}
	if got := doc.Text(); got != "hello\nworld" {
		t.Fatalf("expected loaded text, got %q", got)
	}
	if doc.Dirty {
		t.Fatalf("expected clean document after load")
	}
	if len(out) != 2 {
		t.Fatalf("expected recent+watch effects, got %#v", out)
	}
	if rec, ok := out[0].(RecordRecent); !ok || rec.Path != "/tmp/default.txt" {
		t.Fatalf("expected RecordRecent, got %#v", out[0])
	}
	if watch, ok := out[1].(WatchPaths); !ok || !reflect.DeepEqual(watch.Paths, []string{"/tmp/default.txt"}) {
		t.Fatalf("expected WatchPaths, got %#v", out[1])
	}
}

func TestNewOpensExtraPathsInTabs(t *testing.T) {
	e, effects := New(Options{Paths: []string{"a.txt", "b.txt", "c.txt"}})
	assertInvariants(t, e)
	if e.Documents().Len() != 3 {
		t.Fatalf("expected three tabs, got %d", e.Documents().Len())
	}
	if e.Documents().ActiveIndex() != 0 {
		t.Fatalf("expected first tab active, got %d", e.Documents().ActiveIndex())
	}
	if len(effects) != 3 {
		t.Fatalf("expected three loads, got %d", len(effects))
	}
	for i, eff := range effects {
		load, ok := eff.(LoadFile)
		if !ok {
			t.Fatalf("effect %d: expected LoadFile, got %#v", i, eff)
		}
		if load.Doc != e.Documents().At(i).ID {
			t.Fatalf("effect %d routed to wrong document", i)
		}
	}
}

func TestNewWithoutPathsStartsIdle(t *testing.T) {
	e, effects := New(Options{Themes: []string{"dark", "light"}})
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	if e.Active().Loading {
		t.Fatalf("expected idle document")
	}
	if e.Theme() != "dark" {
		t.Fatalf("expected first theme as default, got %q", e.Theme())
	}
}

func TestEditMarksDirtyAndAdvancesCursor(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	if effects := e.Handle(Edit{Action: buffer.Insert("x")}); len(effects) != 0 {
		t.Fatalf("edits schedule nothing, got %#v", effects)
	}
	if !doc.Dirty {
		t.Fatalf("expected dirty after insert")
	}
	if got := doc.Buffer.Cursor(); got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("expected cursor at column 1, got %+v", got)
	}
}

func TestMotionDoesNotDirty(t *testing.T) {
	e, _ := New(Options{})
	e.Handle(Edit{Action: buffer.Motion(buffer.MoveRight)})
	if e.Active().Dirty {
		t.Fatalf("expected motion to leave document clean")
	}
}

func TestEditIgnoredWhileLoading(t *testing.T) {
	e, _ := New(Options{Paths: []string{"x.txt"}})
	e.Handle(Edit{Action: buffer.Insert("x")})
	doc := e.Active()
	if doc.Dirty || doc.Text() != "" {
		t.Fatalf("expected edit to be ignored while loading, got dirty=%v text=%q", doc.Dirty, doc.Text())
	}
}

func TestOpenWhileLoadingIsNoOp(t *testing.T) {
	e, _ := New(Options{})
	first := e.Handle(OpenFile{})
	pick := singleEffect[PickAndLoad](t, first)
	if pick.Doc != e.Active().ID {
		t.Fatalf("expected pick routed to active document")
	}
	if second := e.Handle(OpenFile{}); len(second) != 0 {
		t.Fatalf("expected second open to be ignored, got %#v", second)
	}
	if second := e.Handle(OpenPath{Path: "other.txt"}); len(second) != 0 {
		t.Fatalf("expected open path to be ignored while loading, got %#v", second)
	}
	if !e.Active().Loading {
		t.Fatalf("expected document to remain loading")
	}
}

func TestOpenFailureLeavesContentAndDirty(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(Edit{Action: buffer.Insert("draft")})
	e.Handle(OpenFile{})
	out := e.Handle(FileOpened{Doc: doc.ID, Err: fileio.ErrDialogClosed})
	if len(out) != 0 {
		t.Fatalf("expected no effects on failure, got %#v", out)
	}
	if doc.Loading {
		t.Fatalf("expected loading cleared")
	}
	if !doc.Dirty || doc.Text() != "draft" {
		t.Fatalf("expected draft untouched, got dirty=%v text=%q", doc.Dirty, doc.Text())
	}
}

func TestTabNewAppendsAndActivates(t *testing.T) {
	e, _ := New(Options{})
	e.Handle(TabNew{})
	assertInvariants(t, e)
	if e.Documents().Len() != 2 || e.Documents().ActiveIndex() != 1 {
		t.Fatalf("expected 2 tabs with index 1 active, got %d/%d", e.Documents().Len(), e.Documents().ActiveIndex())
	}
	doc := e.Active()
	if doc.Dirty || doc.Loading || doc.Path != "" || doc.Text() != "" {
		t.Fatalf("expected empty clean tab, got %+v", doc)
	}
}

func TestSaveUntitledCancelled(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(Edit{Action: buffer.Insert("a")})
	write := singleEffect[WriteFile](t, e.Handle(SaveFile{}))
	if write.Path != "" || write.Content != "a" || write.Doc != doc.ID {
		t.Fatalf("unexpected write effect %#v", write)
	}
	if !doc.Loading {
		t.Fatalf("expected save to mark loading")
	}
	e.Handle(FileSaved{Doc: doc.ID, Err: fileio.ErrDialogClosed})
	if doc.Loading {
		t.Fatalf("expected loading cleared")
	}
	if !doc.Dirty {
		t.Fatalf("expected dirty to be preserved")
	}
	if doc.Path != "" {
		t.Fatalf("expected path to stay empty, got %q", doc.Path)
	}
}

func TestSaveSuccessCleansAndSetsPath(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(Edit{Action: buffer.Insert("a")})
	e.Handle(SaveFile{})
	out := e.Handle(FileSaved{Doc: doc.ID, Result: fileio.Saved{Path: "/tmp/a.txt", ModTime: time.Unix(5, 0)}})
	if doc.Dirty || doc.Loading || doc.Path != "/tmp/a.txt" {
		t.Fatalf("unexpected state after save: %+v", doc)
	}
	if len(out) != 2 {
		t.Fatalf("expected recent+watch effects, got %#v", out)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(Edit{Action: buffer.Insert("a")})
	e.Handle(SaveFile{})
	err := &fileio.Error{Op: "save", Path: "/ro/a", Kind: fileio.KindPermission, Err: errors.New("denied")}
	e.Handle(FileSaved{Doc: doc.ID, Err: err})
	if !doc.Dirty || doc.Loading {
		t.Fatalf("expected dirty idle document, got %+v", doc)
	}
}

func TestSaveCleanDocumentWithPathIsIdempotent(t *testing.T) {
	e, effects := New(Options{Paths: []string{"/tmp/a.txt"}})
	load := singleEffect[LoadFile](t, effects)
	e.Handle(FileOpened{Doc: load.Doc, Result: loaded("/tmp/a.txt", "abc")})
	doc := e.Active()
	before := *doc
	if out := e.Handle(SaveFile{}); len(out) != 0 {
		t.Fatalf("expected clean save to be a no-op, got %#v", out)
	}
	if doc.Loading || doc.Dirty || doc.Path != before.Path || doc.Text() != "abc" {
		t.Fatalf("expected state unchanged, got %+v", doc)
	}
}

func TestSaveAsAlwaysAsks(t *testing.T) {
	e, effects := New(Options{Paths: []string{"/tmp/a.txt"}})
	load := singleEffect[LoadFile](t, effects)
	e.Handle(FileOpened{Doc: load.Doc, Result: loaded("/tmp/a.txt", "abc")})
	write := singleEffect[WriteFile](t, e.Handle(SaveFileAs{}))
	if write.Path != "" {
		t.Fatalf("expected save as to request a location, got %q", write.Path)
	}
}

func TestCloseOnlyTabReplacesDocument(t *testing.T) {
	e, _ := New(Options{})
	old := e.Active()
	e.Handle(Edit{Action: buffer.Insert("x")})
	e.Handle(TabClosed{Index: 0})
	assertInvariants(t, e)
	if e.Documents().Len() != 1 {
		t.Fatalf("expected one document, got %d", e.Documents().Len())
	}
	if e.Active().ID == old.ID {
		t.Fatalf("expected a fresh replacement document")
	}
	if e.Active().Dirty || e.Active().Text() != "" {
		t.Fatalf("expected replacement to be empty and clean")
	}
	for i := 0; i < 3; i++ {
		e.Handle(TabClosed{Index: 0})
		assertInvariants(t, e)
	}
}

func TestCompletionRoutesByIDAfterTabSwitch(t *testing.T) {
	e, _ := New(Options{})
	first := e.Active()
	e.Handle(OpenFile{})
	e.Handle(TabNew{})
	second := e.Active()
	e.Handle(Edit{Action: buffer.Insert("keep")})

	e.Handle(FileOpened{Doc: first.ID, Result: loaded("/tmp/f.txt", "loaded")})
	if first.Text() != "loaded" || first.Path != "/tmp/f.txt" {
		t.Fatalf("expected first tab to receive the load, got %q", first.Text())
	}
	if second.Text() != "keep" || second.Path != "" {
		t.Fatalf("expected active tab untouched, got %q", second.Text())
	}
	if e.Active() != second {
		t.Fatalf("expected active tab to stay selected")
	}
}

func TestCompletionForClosedTabIsDropped(t *testing.T) {
	e, _ := New(Options{})
	e.Handle(TabNew{})
	doomed := e.Active()
	e.Handle(OpenFile{})
	e.Handle(TabClosed{Index: 1})
	survivor := e.Active()

	out := e.Handle(FileOpened{Doc: doomed.ID, Result: loaded("/tmp/x", "x")})
	if len(out) != 0 {
		t.Fatalf("expected dropped completion to schedule nothing, got %#v", out)
	}
	if survivor.Text() != "" || survivor.Path != "" {
		t.Fatalf("expected surviving tab untouched")
	}
	assertInvariants(t, e)
}

func TestUnsolicitedCompletionIsDropped(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(Edit{Action: buffer.Insert("mine")})
	e.Handle(FileOpened{Doc: doc.ID, Result: loaded("/tmp/x", "theirs")})
	if doc.Text() != "mine" {
		t.Fatalf("expected idle document to ignore completion, got %q", doc.Text())
	}
}

func TestTabNavigation(t *testing.T) {
	e, _ := New(Options{})
	e.Handle(TabNew{})
	e.Handle(TabNew{})
	e.Handle(TabSelected{Index: 0})
	if e.Documents().ActiveIndex() != 0 {
		t.Fatalf("expected index 0, got %d", e.Documents().ActiveIndex())
	}
	e.Handle(TabPrev{})
	if e.Documents().ActiveIndex() != 2 {
		t.Fatalf("expected wrap to 2, got %d", e.Documents().ActiveIndex())
	}
	e.Handle(TabNext{})
	if e.Documents().ActiveIndex() != 0 {
		t.Fatalf("expected wrap to 0, got %d", e.Documents().ActiveIndex())
	}
	e.Handle(TabSelected{Index: 7})
	if e.Documents().ActiveIndex() != 0 {
		t.Fatalf("expected out-of-range select ignored, got %d", e.Documents().ActiveIndex())
	}
}

func TestNewFileResetsUnlessLoading(t *testing.T) {
	e, effects := New(Options{Paths: []string{"/tmp/a"}})
	load := singleEffect[LoadFile](t, effects)
	e.Handle(NewFile{})
	if !e.Active().Loading {
		t.Fatalf("expected reset refused while loading")
	}
	e.Handle(FileOpened{Doc: load.Doc, Result: loaded("/tmp/a", "a")})
	out := e.Handle(NewFile{})
	doc := e.Active()
	if doc.Path != "" || doc.Text() != "" || doc.Dirty {
		t.Fatalf("expected reset document, got %+v", doc)
	}
	watch := singleEffect[WatchPaths](t, out)
	if len(watch.Paths) != 0 {
		t.Fatalf("expected watch list cleared, got %v", watch.Paths)
	}
}

func TestThemeSelectedOnlyAcceptsKnownNames(t *testing.T) {
	e, _ := New(Options{Theme: "dark", Themes: []string{"dark", "light"}})
	e.Handle(ThemeSelected{Name: "neon"})
	if e.Theme() != "dark" {
		t.Fatalf("expected unknown theme ignored, got %q", e.Theme())
	}
	e.Handle(ThemeSelected{Name: "light"})
	if e.Theme() != "light" {
		t.Fatalf("expected light, got %q", e.Theme())
	}
}

func TestFileChangedMarksStale(t *testing.T) {
	e, effects := New(Options{Paths: []string{"/tmp/a"}})
	load := singleEffect[LoadFile](t, effects)
	e.Handle(FileOpened{Doc: load.Doc, Result: loaded("/tmp/a", "a")})
	doc := e.Active()

	e.Handle(FileChanged{Path: "/tmp/a", ModTime: doc.ModTime})
	if doc.Stale {
		t.Fatalf("expected unchanged mtime to be ignored")
	}
	e.Handle(FileChanged{Path: "/tmp/a", ModTime: doc.ModTime.Add(time.Second)})
	if !doc.Stale {
		t.Fatalf("expected newer mtime to mark stale")
	}
}

func TestCopyPath(t *testing.T) {
	e, _ := New(Options{})
	if out := e.Handle(CopyPath{}); len(out) != 0 {
		t.Fatalf("expected nothing to copy for untitled document, got %#v", out)
	}
	e.Active().Path = "/tmp/a"
	copyEff := singleEffect[CopyToClipboard](t, e.Handle(CopyPath{}))
	if copyEff.Text != "/tmp/a" {
		t.Fatalf("expected path on clipboard, got %q", copyEff.Text)
	}
}

func TestWatchPathsOnlyEmittedOnChange(t *testing.T) {
	e, effects := New(Options{Paths: []string{"/tmp/a", "/tmp/b"}})
	for _, eff := range effects {
		load := eff.(LoadFile)
		e.Handle(FileOpened{Doc: load.Doc, Result: loaded(load.Path, "")})
	}
	if !reflect.DeepEqual(e.watched, []string{"/tmp/a", "/tmp/b"}) {
		t.Fatalf("expected both paths watched, got %v", e.watched)
	}
	e.Handle(TabNew{})
	if out := e.Handle(TabClosed{Index: 2}); len(out) != 0 {
		t.Fatalf("expected no watch change when closing untitled tab, got %#v", out)
	}
	out := e.Handle(TabClosed{Index: 0})
	watch := singleEffect[WatchPaths](t, out)
	if !reflect.DeepEqual(watch.Paths, []string{"/tmp/b"}) {
		t.Fatalf("expected /tmp/b only, got %v", watch.Paths)
	}
}

func TestDirtyOnlyAfterContentChange(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(Edit{Action: buffer.DeleteBackward()})
	if doc.Dirty {
		t.Fatalf("expected no-op delete to keep document clean")
	}
}

func TestMissingRecentPathIsForgotten(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	load := singleEffect[LoadFile](t, e.Handle(OpenPath{Path: "/gone", Recent: true}))
	if !load.Recent {
		t.Fatalf("expected load to carry the recent flag")
	}
	missing := &fileio.Error{Op: "read", Path: "/gone", Kind: fileio.KindNotFound, Err: fs.ErrNotExist}
	forget := singleEffect[ForgetRecent](t, e.Handle(FileOpened{Doc: doc.ID, Err: missing, Recent: true}))
	if forget.Path != "/gone" {
		t.Fatalf("expected /gone forgotten, got %q", forget.Path)
	}
}

func TestMissingPlainPathIsNotForgotten(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	e.Handle(OpenPath{Path: "/gone"})
	missing := &fileio.Error{Op: "read", Path: "/gone", Kind: fileio.KindNotFound, Err: fs.ErrNotExist}
	if out := e.Handle(FileOpened{Doc: doc.ID, Err: missing}); len(out) != 0 {
		t.Fatalf("expected no effects, got %#v", out)
	}

	e.Handle(OpenPath{Path: "/locked", Recent: true})
	denied := &fileio.Error{Op: "read", Path: "/locked", Kind: fileio.KindPermission, Err: fs.ErrPermission}
	if out := e.Handle(FileOpened{Doc: doc.ID, Err: denied, Recent: true}); len(out) != 0 {
		t.Fatalf("expected unreadable recent file kept, got %#v", out)
	}
}

func TestPendingTracksOutstandingWork(t *testing.T) {
	e, _ := New(Options{})
	doc := e.Active()
	if e.Pending(doc.ID) {
		t.Fatalf("expected idle document not pending")
	}
	e.Handle(OpenPath{Path: "/a"})
	if !e.Pending(doc.ID) {
		t.Fatalf("expected loading document pending")
	}
	e.Handle(TabNew{})
	e.Handle(TabClosed{Index: 0})
	if e.Pending(doc.ID) {
		t.Fatalf("expected closed document not pending")
	}
}
