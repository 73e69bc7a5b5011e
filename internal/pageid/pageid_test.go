package pageid

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Bare dashed ID passes through",
			input: "12345678-abcd-ef01-2345-678901234567",
			want:  "12345678-abcd-ef01-2345-678901234567",
		},
		{
			name:  "Bare compact ID passes through",
			input: "12345678abcdef012345678901234567",
			want:  "12345678abcdef012345678901234567",
		},
		{
			name:  "URL with compact ID gains dashes",
			input: "https://www.notion.so/My-Page-12345678abcdef012345678901234567",
			want:  "12345678-abcd-ef01-2345-678901234567",
		},
		{
			name:  "URL with dashed ID",
			input: "https://notion.so/12345678-abcd-ef01-2345-678901234567",
			want:  "12345678-abcd-ef01-2345-678901234567",
		},
		{
			name:  "URL with query string",
			input: "https://www.notion.so/ws/Page-12345678abcdef012345678901234567?pvs=4",
			want:  "12345678-abcd-ef01-2345-678901234567",
		},
		{
			name:  "URL without an ID passes through",
			input: "https://www.notion.so/workspace",
			want:  "https://www.notion.so/workspace",
		},
		{
			name:  "Unrelated string passes through",
			input: "not an id",
			want:  "not an id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
