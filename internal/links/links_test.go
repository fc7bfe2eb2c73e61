package links

import "testing"

func TestWikiURL(t *testing.T) {
	got := WikiURL("https://wiki.example.com/wiki/", "Paul F. Tompkins")
	want := "https://wiki.example.com/wiki/Paul_F._Tompkins"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if WikiURL("", "Name") != "" || WikiURL("base", "") != "" {
		t.Fatalf("empty inputs must yield empty URLs")
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"I'll Always Live Here", "ill-always-live-here"},
		{"The Best of CBB!", "the-best-of-cbb"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Don’t Stop -- Now", "dont-stop-now"},
		{"***", ""},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Fatalf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAudioURL(t *testing.T) {
	got := AudioURL("https://audio.example.com/ep", "Farts and Procreation")
	want := "https://audio.example.com/ep/farts-and-procreation"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if AudioURL("https://audio.example.com", "***") != "" {
		t.Fatalf("unsluggable title must yield empty URL")
	}
}
