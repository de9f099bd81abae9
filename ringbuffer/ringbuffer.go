// Package ringbuffer implements a lock-free single-producer
// single-consumer byte ring, the low-level buffering primitive used on
// every audio edge of the processing graph.
package ringbuffer

import "sync/atomic"

// Ring is a single-producer single-consumer byte ring buffer. Capacity is
// fixed at construction and rounded up to the system page size. There is no
// allocation after New, and no blocking: callers must respect the counts
// reported by Writable/Readable before calling WriteSlice/ReadSlice.
//
// Exactly one goroutine may call the write-side methods (Writable,
// WriteSlice, AdvanceWrite) and exactly one goroutine may call the
// read-side methods (Readable, ReadSlice, AdvanceRead). The two sides
// synchronize only through the atomic write/read indices below.
type Ring struct {
	buf   []byte
	mask  uint64
	write atomic.Uint64 // next byte index to be written, monotonically increasing
	read  atomic.Uint64 // next byte index to be read, monotonically increasing
}

// New creates a ring whose usable capacity is at least minBytes, rounded up
// to the next power-of-two multiple of the system page size so index
// wraparound can be done with a mask instead of a modulo.
func New(minBytes int) *Ring {
	if minBytes <= 0 {
		minBytes = 1
	}
	cap := pageSize()
	for cap < minBytes {
		cap *= 2
	}
	return &Ring{
		buf:  make([]byte, cap),
		mask: uint64(cap - 1),
	}
}

// Capacity returns the total number of bytes the ring can hold.
func (r *Ring) Capacity() int {
	return len(r.buf)
}

// Writable returns the number of bytes the producer may write right now.
func (r *Ring) Writable() int {
	w := r.write.Load()
	rd := r.read.Load()
	return len(r.buf) - int(w-rd)
}

// Readable returns the number of bytes the consumer may read right now.
func (r *Ring) Readable() int {
	w := r.write.Load()
	rd := r.read.Load()
	return int(w - rd)
}

// WriteSlice returns a slice positioned at the current write cursor, valid
// for up to Writable() bytes. It may be shorter than requested if the
// region wraps past the end of the backing array; callers that need more
// than the first contiguous run must call WriteSlice/AdvanceWrite again.
func (r *Ring) WriteSlice(n int) []byte {
	if n > r.Writable() {
		panic("ringbuffer: write beyond reported capacity")
	}
	off := r.write.Load() & r.mask
	end := off + uint64(n)
	if end > uint64(len(r.buf)) {
		end = uint64(len(r.buf))
	}
	return r.buf[off:end]
}

// ReadSlice returns a slice positioned at the current read cursor, valid
// for up to Readable() bytes, with the same wraparound caveat as
// WriteSlice.
func (r *Ring) ReadSlice(n int) []byte {
	if n > r.Readable() {
		panic("ringbuffer: read beyond reported availability")
	}
	off := r.read.Load() & r.mask
	end := off + uint64(n)
	if end > uint64(len(r.buf)) {
		end = uint64(len(r.buf))
	}
	return r.buf[off:end]
}

// AdvanceWrite commits n bytes previously filled via WriteSlice, making
// them visible to the consumer. The store uses release ordering with
// respect to the writes that filled the bytes: any goroutine that
// subsequently observes the new value via Readable/ReadSlice (an acquire
// load) is guaranteed to see the bytes written before this call.
func (r *Ring) AdvanceWrite(n int) {
	if n < 0 || n > r.Writable() {
		panic("ringbuffer: bounds check failed in AdvanceWrite")
	}
	r.write.Store(r.write.Load() + uint64(n))
}

// AdvanceRead commits n bytes previously consumed via ReadSlice, freeing
// them for the producer to reuse.
func (r *Ring) AdvanceRead(n int) {
	if n < 0 || n > r.Readable() {
		panic("ringbuffer: bounds check failed in AdvanceRead")
	}
	r.read.Store(r.read.Load() + uint64(n))
}

// Reset returns the ring to empty. Callers must guarantee neither side is
// concurrently reading or writing; it exists for pipeline (re)start, not
// for use while the pipeline is running.
func (r *Ring) Reset() {
	r.write.Store(0)
	r.read.Store(0)
}
