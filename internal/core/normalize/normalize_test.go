package normalize

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"already clean", "Recibiste S/ 50.00 de Juan Perez", "Recibiste S/ 50.00 de Juan Perez"},
		{"nbsp between marker and digits", "S/ 50.00", "S/ 50.00"},
		{"narrow nbsp", "S/ 7.50", "S/ 7.50"},
		{"fullwidth marker and digits", "Ｓ／ １２.００", "S/ 12.00"},
		{"zero width joiner inside name", "Mar‍ia Lopez", "Maria Lopez"},
		{"bom prefix", "\uFEFFYape!", "Yape!"},
		{"newlines and tabs collapse", "Yape!\n\tMaria   Lopez\r\n", "Yape! Maria Lopez"},
		{"accents kept", "te envió", "te envió"},
		{"case kept", "JUAN perez", "JUAN perez"},
		{"control bytes dropped", "S/\x00 1.00\x7f", "S/ 1.00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clean(c.in); got != c.want {
				t.Fatalf("Clean(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "  Recibiste S/ 50.00 "); got != "Recibiste S/ 50.00" {
		t.Fatalf("got %q", got)
	}
	if got := Join("Yape!", "Maria Lopez"); got != "Yape! Maria Lopez" {
		t.Fatalf("got %q", got)
	}
	if got := Join("", ""); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ok\n\t", "ok\n\t"},
		{"a\x01b", "ab"},
		{"a\xffb", "ab"},
		{"a\u0085b", "ab"},
		{"ñandú", "ñandú"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
