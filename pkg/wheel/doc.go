// Package wheel implements a wheel picker: a vertically scrolling list that
// snaps to one selected item on a fixed selection line.
//
// # Raw and logical indices
//
// A finite wheel scrolls over raw indices [0, N-1], which are also the
// logical item indices. An infinite wheel scrolls over a very large raw range
// and maps raw indices to items with [ToLogical]; logical item 0 sits at
// [InfiniteOffset]. [ToRawForTarget] picks the nearest raw index for a
// logical target so programmatic scrolls take the short way round.
//
// # Change events
//
// [Picker] reports two kinds of change:
//
//   - OnImmediateChange on every frame in which the item on the selection
//     line changes, including mid-drag and mid-fling.
//   - OnChange when a scroll settles on a different item than the last one
//     reported, and when a new SelectedIndex is accepted from Update.
//
// OnChange never repeats a value and is never triggered by its own echo: a
// host that writes the reported index back into SelectedIndex causes no
// further callbacks. While the user drags, external SelectedIndex updates
// are deferred until the gesture settles.
//
// # Frames
//
// A picker is stepped by an [animation.Scheduler]. Input handlers, Update and
// Scheduler.Step all run on one goroutine.
package wheel
