package memory

// messageOverhead is the fixed per-message token cost for role/structure
// framing on top of the content itself.
const messageOverhead = 10

// SelectWindow picks the longest suffix of msgs (most recent turns) whose
// estimated token cost, plus the system prompt's cost, stays within limit.
//
// The walk is greedy and recency-biased: messages are considered newest to
// oldest and accumulation stops at the first one that would overflow. An
// older message is never included while a newer one is excluded, so this is
// not a knapsack fit. The result is in chronological order.
//
// When even the most recent message cannot fit (e.g. the system prompt
// alone exceeds the limit), the result is empty; the caller decides whether
// a bare system-prompt completion is still worth sending.
func SelectWindow(systemPrompt string, msgs []Message, limit int) []Message {
	total := EstimateTokens(systemPrompt)

	cut := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		cost := EstimateTokens(msgs[i].Content) + messageOverhead
		if total+cost > limit {
			break
		}
		total += cost
		cut = i
	}

	if cut == len(msgs) {
		return nil
	}
	return append([]Message(nil), msgs[cut:]...)
}
