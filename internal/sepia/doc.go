// Package sepia applies the fixed sepia color matrix to decoded frames.
//
// Pixels are handled in the decoder's B,G,R channel order and the matrix is
// applied to that vector as-is. Results are saturated to the 8-bit range, so
// bright inputs clip at 255 and black stays black. The transform is not a
// projection: applying it twice gives a different image than applying it once.
package sepia
