package gateway

// EstimateTokens approximates the token count of a text at 4 characters per
// token, rounding up. Used both for admission pre-checks and for recording
// usage against backends that do not report exact counts.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// EstimateMessageTokens sums the estimate over all message contents.
func EstimateMessageTokens(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m.Content)
	}
	return total
}
