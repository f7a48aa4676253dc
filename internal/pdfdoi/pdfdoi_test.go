package pdfdoi

import "testing"

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare doi",
			text: "Citation: 10.1029/2005GC001081",
			want: "10.1029/2005GC001081",
		},
		{
			name: "doi url",
			text: "Available at https://doi.org/10.1016/j.quascirev.2020.106697 online",
			want: "10.1016/j.quascirev.2020.106697",
		},
		{
			name: "trailing punctuation trimmed",
			text: "see DOI: 10.1029/2005GC001081.",
			want: "10.1029/2005GC001081",
		},
		{
			name: "closing paren trimmed",
			text: "(doi:10.1093/gji/ggaa123)",
			want: "10.1093/gji/ggaa123",
		},
		{
			name: "first of several",
			text: "10.1029/2005GC001081 cites 10.1016/j.epsl.2010.01.001",
			want: "10.1029/2005GC001081",
		},
		{
			name: "implausibly short suffix skipped",
			text: "section 10.1234/x has details",
			want: "",
		},
		{
			name: "no doi",
			text: "Volume 12, pages 12-34, 1999",
			want: "",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := find(tt.text); got != tt.want {
				t.Errorf("find(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPlausible(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1029/2005GC001081", true},
		{"10.1234/ab", true},
		{"10.1234/x", false},        // too short
		{"11.1234/abcdef", false},   // wrong prefix
		{"10.1234567890123", false}, // no slash
		{"", false},
	}

	for _, tt := range tests {
		if got := plausible(tt.doi); got != tt.want {
			t.Errorf("plausible(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}
