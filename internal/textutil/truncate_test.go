package textutil

import "testing"

func TestTruncateLines(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		max    int
		suffix string
		want   string
	}{
		{
			name:   "shorter than max",
			input:  "hello",
			max:    10,
			suffix: "...",
			want:   "hello",
		},
		{
			name:   "exact length",
			input:  "hello",
			max:    5,
			suffix: "...",
			want:   "hello",
		},
		{
			name:   "empty input",
			input:  "",
			max:    10,
			suffix: "...",
			want:   "",
		},
		{
			name:   "keeps whole lines",
			input:  "- a (u1)\n- b (u2)\n- c (u3)\n",
			max:    14,
			suffix: "[cut]",
			want:   "- a (u1)\n[cut]",
		},
		{
			name:   "line ending exactly at max is kept",
			input:  "ab\ncd\nef\n",
			max:    6,
			suffix: "!",
			want:   "ab\ncd\n!",
		},
		{
			name:   "single long line cut inside",
			input:  "hello world",
			max:    5,
			suffix: "...",
			want:   "hello...",
		},
		{
			name:   "max zero",
			input:  "hello",
			max:    0,
			suffix: "...",
			want:   "...",
		},
		{
			name:   "two-byte utf8 not split",
			input:  "ab\xc3\xa9cd", // "abé" + "cd"
			max:    3,              // lands on the second byte of é
			suffix: "!",
			want:   "ab!",
		},
		{
			name:   "three-byte utf8 not split",
			input:  "a\xe2\x82\xacb", // "a€b"
			max:    2,
			suffix: "!",
			want:   "a!",
		},
		{
			name:   "four-byte utf8 not split",
			input:  "a\xf0\x9f\x98\x80b", // "a😀b"
			max:    3,
			suffix: "!",
			want:   "a!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateLines(tt.input, tt.max, tt.suffix)
			if got != tt.want {
				t.Errorf("TruncateLines(%q, %d, %q) = %q, want %q",
					tt.input, tt.max, tt.suffix, got, tt.want)
			}
		})
	}
}
