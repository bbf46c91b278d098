// Package allocator partitions conference abstracts across themes.
//
// Allocation runs in two passes. Abstracts with a single candidate theme go
// straight to it. Abstracts with several candidates are then taken one at a
// time and placed in whichever candidate currently holds the fewest members,
// ties going to the candidate that comes first in the theme dictionary.
//
// The order in which the multi-candidate abstracts are taken changes the
// outcome when counts tie, so it is an explicit option:
//
//   - types.OrderReverse: last discovered first (default)
//   - types.OrderInput: first discovered first
package allocator
