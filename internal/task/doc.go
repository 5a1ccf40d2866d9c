// Package task models tracked tasks and the ordered list that holds them.
//
// A task is one of three kinds, identified by a kind letter:
//
//	T  to-do     a description only
//	D  deadline  a description and a "by" date-time
//	E  event     a description and a "from"/"to" date-time range
//
// Every kind renders two projections. The display line is what users see:
//
//	[T][X] read book
//	[D][ ] submit assignment (by: 2025-12-15 2359)
//	[E][X] conference (from: 2025-09-09 1800 to: 2025-09-09 2030)
//
// The storage line is what gets persisted, one per task, fields joined by " | ":
//
//	T | 1 | read book
//	D | 0 | submit assignment | 2025-12-15 2359
//	E | 1 | conference | 2025-09-09 1800 - 2025-09-09 2030
//
// # Date-time format
//
// All date-times use a single fixed layout, yyyy-MM-dd HHmm (Go layout
// "2006-01-02 1504"), both for display and storage. A value that does not
// match the layout is reported as ErrInvalidDateFormat.
//
// # Positions
//
// List positions are 0-based. Callers that talk to users convert to and from
// 1-based task numbers at the boundary. Removing a task shifts every later
// task down by one, so a position is not a stable identifier.
package task
