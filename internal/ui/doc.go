// Package ui contains the Bubble Tea program for the editor.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each message
//     type is routed through a typed handler registry, so key presses, mouse
//     clicks, completions and watcher events each land in a focused function.
//   - Key and mouse handlers translate input into editor.Command values and
//     pass them to dispatch, which calls editor.Editor.Handle and turns the
//     returned effects into tea.Cmd values (runEffects).
//   - File loads and saves run on the command bus (internal/ui/command). Their
//     results come back as editor.FileOpened and editor.FileSaved messages,
//     which are dispatched like any other command. The editor matches them to
//     documents by ID, so a completion for a closed tab is dropped.
//
// Dialogs:
//   - When no external picker is supplied, the model owns a Broker. File
//     service calls block on the broker while the event loop shows an overlay
//     (bubbles filepicker for open, textinput for save) and replies once the
//     user accepts or dismisses it.
//
// Backend interactions:
//   - A backend.Watcher streams file change events. Update waits for them and
//     dispatches editor.FileChanged, which marks affected documents stale.
//
// Harness runs the model without a terminal for tests.
package ui
