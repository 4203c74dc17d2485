package pool

import "sync"

var int32SlicePool = sync.Pool{
	New: func() any { return &[]int32{} },
}

// GetInt32Slice retrieves an empty int32 slice with at least capacity elements of room.
//
// The caller must call the returned cleanup function to return the slice to the pool,
// and must not retain the slice afterwards.
//
// Example:
//
//	lengths, cleanup := pool.GetInt32Slice(6000)
//	defer cleanup()
//	lengths = append(lengths, 12)
func GetInt32Slice(capacity int) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]int32, 0, capacity)
		*ptr = slice
	}

	return slice, func() { int32SlicePool.Put(ptr) }
}
