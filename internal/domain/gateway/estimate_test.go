package gateway

import "testing"

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"abcdefgh", 2},
		{"hello world, this is a prompt", 8},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestEstimateMessageTokens(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "abcd"},     // 1
		{Role: RoleUser, Content: "abcdefghi"},  // 3
		{Role: RoleAssistant, Content: ""},      // 0
	}
	if got := EstimateMessageTokens(messages); got != 4 {
		t.Fatalf("EstimateMessageTokens = %d, want 4", got)
	}
}
