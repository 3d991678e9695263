package blockstream

// grow returns a slice of length need backed by buf when it is large
// enough, or by a new array of capacity max(need, 1.5*cap(buf)).
// Contents are not preserved across a reallocation; callers always
// overwrite what they asked for.
func grow(buf []byte, need int) []byte {
	if cap(buf) >= need {
		return buf[:need]
	}
	return make([]byte, need, max(need, cap(buf)*3/2))
}
