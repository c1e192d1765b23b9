// Package session holds the document state of one opened acquisition: the
// raw and working time series, the current spectrum, cursors, zero-fill and
// phase settings.
//
// A Session is owned by a single goroutine. Transforms run on a background
// pool and only touch session state when the owner calls [Session.Poll] or
// [Session.Await]. Results are applied in the order they arrive, so when two
// transforms overlap the later arrival wins.
package session
