// Package safeconv converts between integer types used at the libgit2
// boundary, panicking on values that cannot be represented.
package safeconv

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MustUintToInt converts uint to int. It panics on overflow, which
// cannot happen for libgit2 counts on supported platforms.
func MustUintToInt(v uint) int {
	if v > uint(MaxInt) {
		panic("safeconv: uint value overflows int")
	}

	return int(v)
}

// MustIntToUint converts int to uint. It panics on negative input,
// which callers rule out before converting.
func MustIntToUint(v int) uint {
	if v < 0 {
		panic("safeconv: negative value for uint")
	}

	return uint(v)
}
