// Package dom holds the live document tree of an editing surface and the tree and
// range primitives that the history engine and formatting commands mutate it with.
//
// The tree is a golang.org/x/net/html node tree hanging off a detached root element.
// Positions are Points: for a text node the offset is a byte offset into its data,
// for an element it is a child index. A Range is a start and end Point in document
// order; it is never kept across a mutation that may replace the nodes it refers to.
package dom
