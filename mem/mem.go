// Package mem provides the byte-addressable memory attached to the CPU.
//
// The address space is exactly 64 KiB; since addresses are constrained to
// 16 bits by type, out-of-range access is impossible and the interface has
// no error returns. The memory is owned by the surrounding machine and
// shared with one CPU at a time — the package performs no locking.
package mem

// Memory is the byte store the CPU reads instructions and operands from.
type Memory interface {
	// Get reads the byte at the given address.
	Get(addr uint16) uint8
	// Set writes a byte to the given address.
	Set(addr uint16, value uint8)
}

// RAM is a flat 64 KiB memory.
type RAM struct {
	bytes [64 * 1024]uint8
}

var _ Memory = (*RAM)(nil)

// Get reads the byte at the given address.
func (ram *RAM) Get(addr uint16) uint8 {
	return ram.bytes[addr]
}

// Set writes a byte to the given address.
func (ram *RAM) Set(addr uint16, value uint8) {
	ram.bytes[addr] = value
}

// Reset zeroes the entire address space.
func (ram *RAM) Reset() {
	clear(ram.bytes[:])
}

// Load copies a binary image into memory starting at origin.
// The image wraps at the top of the address space like every other access.
func (ram *RAM) Load(origin uint16, image []uint8) {
	addr := origin
	for _, value := range image {
		ram.bytes[addr] = value
		addr++
	}
}
