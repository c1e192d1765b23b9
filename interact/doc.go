// Package interact implements the pointer-driven cursor, zoom and phase
// slider state machines of the plot, independent of any widget toolkit.
//
// Handlers receive [Event] values and talk back through a [Surface]. Moving
// artists request a cheap partial repaint with Surface.Blit; settled states
// request a full Surface.Draw. Finished drags write their result as text to
// the matching parameter field ("<domain>_cursor", "<domain>_x_limit",
// "<domain>_y_limit") with Surface.SetField.
package interact
