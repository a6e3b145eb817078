package middleware

import "testing"

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"call.wav", "call.wav"},
		{"../../etc/passwd", "passwd"},
		{"weird\x00name.mp3", "weirdname.mp3"},
		{"  spaced.ogg  ", "spaced.ogg"},
		{"", "upload"},
		{"..", "upload"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSafeExtension(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"call.wav", ".wav"},
		{"Call.MP3", ".mp3"},
		{"voice.opus", ".opus"},
		{"payload.exe", ".bin"},
		{"noext", ".bin"},
	}
	for _, c := range cases {
		if got := SafeExtension(c.in); got != c.want {
			t.Errorf("SafeExtension(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
