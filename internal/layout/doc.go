// Package layout implements the page layout tree algebra: a binary
// space-partition tree per page and the gestures that keep it well formed
// while regions are split, deleted, merged and resized.
//
// Every operation mutates the tree in place and hands back the node the
// caller should focus next. Dangling ids never fail loudly; they yield nil
// so that UI handlers can simply do nothing.
package layout
