package memory

// EstimateTokens approximates the token cost of text using the ~4 chars per
// token heuristic. Not billing-accurate, but it is the sole admission-control
// heuristic protecting completion calls from oversized payloads, so every
// caller reasoning about the same budget must use this function.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	// Round up: ceil(len/4)
	return (len(text) + 3) / 4
}
