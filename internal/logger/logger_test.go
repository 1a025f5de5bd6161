package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  interface{}
		want string
	}{
		{
			name: "token_redacted",
			key:  "token",
			val:  "abc.def.ghi",
			want: "[REDACTED]",
		},
		{
			name: "password_redacted",
			key:  "user_password",
			val:  "hunter2",
			want: "[REDACTED]",
		},
		{
			name: "email_redacted",
			key:  "email",
			val:  "learner@example.com",
			want: "[REDACTED]",
		},
		{
			name: "plain_key_passes_through",
			key:  "course_id",
			val:  "course-v1:edX+DemoX+Demo",
			want: "course-v1:edX+DemoX+Demo",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeValue(tc.key, tc.val)
			if got != tc.want {
				t.Fatalf("sanitizeValue(%q, %v) = %v, want %v", tc.key, tc.val, got, tc.want)
			}
		})
	}
}

func TestSanitizeValueHashesUserKeys(t *testing.T) {
	got := sanitizeValue("user_id", "3f2b")
	s, ok := got.(string)
	if !ok || !strings.HasPrefix(s, "hash:") {
		t.Fatalf("user_id should hash, got %v", got)
	}
	if sanitizeValue("user_id", "3f2b") != got {
		t.Fatalf("hash should be stable for equal input")
	}
	if sanitizeValue("user_id", "other") == got {
		t.Fatalf("distinct inputs should hash differently")
	}
}

func TestHashValueEmpty(t *testing.T) {
	if got := hashValue(""); got != "" {
		t.Fatalf("hashValue(\"\") = %q, want empty", got)
	}
}
