// Package domain contains the entities exchanged between the console and the
// scanning backend: scan targets, submission outcomes, report states and the
// records shown by the history and protection views. Tagged unions are sealed
// interfaces so that callers can switch on them exhaustively.
package domain
