package mandel

// escapeRadiusSq is the squared escape radius; |z|² above it means the orbit escapes.
const escapeRadiusSq = 4.0

// IsMember reports whether c stays bounded for maxIter iterations of z = z² + c,
// starting from z = c. An orbit whose squared modulus overflows to NaN counts as
// escaped.
func IsMember(c complex128, maxIter int) bool {
	z := c
	for i := 0; i < maxIter; i++ {
		z = z*z + c
		if !(real(z)*real(z)+imag(z)*imag(z) <= escapeRadiusSq) {
			return false
		}
	}
	return true
}
