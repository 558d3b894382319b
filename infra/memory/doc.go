// Package memory provides a typed sync.Pool wrapper used to reuse
// *orderbook.Order values across connections instead of allocating a
// fresh one per incoming frame.
package memory
