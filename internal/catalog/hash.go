package catalog

// hash32 reduces a string to a 32-bit signed integer with the polynomial
// rolling hash hash = hash*31 + char, truncated to int32 at every step.
// It is shared by the fallback date derivation and the score jitter so
// both always agree on an item's identity.
func hash32(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

// absHash returns |hash32(s)| widened to int64 so the minimum int32 value
// does not overflow on negation.
func absHash(s string) int64 {
	h := int64(hash32(s))
	if h < 0 {
		h = -h
	}
	return h
}
