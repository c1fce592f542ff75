package llm

// EstimateTokens provides a rough token count for text, one token per four
// bytes. It feeds the generation history, not any billing.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}
