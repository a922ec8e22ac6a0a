package qa

import "testing"

func TestIsFriendly(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "plain greeting", query: "hello", want: true},
		{name: "uppercase", query: "HELLO", want: true},
		{name: "punctuation stripped", query: "Hi!!", want: true},
		{name: "surrounding whitespace", query: "  thanks  ", want: true},
		{name: "multi word phrase", query: "how are you?", want: true},
		{name: "thank you", query: "Thank you.", want: true},
		{name: "greeting inside longer sentence", query: "Hi there, how are you doing today", want: false},
		{name: "real question", query: "What does section 3 say about refunds?", want: false},
		{name: "empty", query: "", want: false},
		{name: "only punctuation", query: "???", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFriendly(tt.query); got != tt.want {
				t.Errorf("IsFriendly(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
