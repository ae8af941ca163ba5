// Package cache provides the small LRU cache used to share gamma tables
// and compiled shaders.
//
// Values are built once per key and then reused by every caller:
//
//	tables := cache.New[float32, *Table](32)
//	t := tables.GetOrCreate(2.2, func() *Table { return build(2.2) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
