package raw

import "testing"

func TestConf_Get(t *testing.T) {
	t.Setenv("LOG_SERVICE", " cobrify-capture ")
	t.Setenv("CAPTURE_API_PORT", " 4000 ")

	root := New()
	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "prefixed hit trimmed", conf: root.Prefix("LOG_"), key: "SERVICE", def: "x", want: "cobrify-capture"},
		{name: "nested prefix", conf: root.Prefix("CAPTURE_").Prefix("API_"), key: "PORT", def: "x", want: "4000"},
		{name: "missing returns default", conf: root.Prefix("LOG_"), key: "MISSING", def: "d", want: "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConf_GetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_A", "true")
	t.Setenv("LOG_B", "YES")
	t.Setenv("LOG_C", " on ")
	t.Setenv("LOG_D", "0")
	t.Setenv("LOG_E", "nope")

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"A", false, true},
		{"B", false, true},
		{"C", false, true},
		{"D", true, false},
		{"E", true, false},
		{"MISSING", true, true},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestConf_GetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_OK", "42")
	t.Setenv("LOG_NEG", "-3")
	t.Setenv("LOG_BAD", "4x")

	if got := c.GetInt("OK", 0); got != 42 {
		t.Fatalf("GetInt OK = %d", got)
	}
	if got := c.GetInt("NEG", 7); got != 7 {
		t.Fatalf("GetInt NEG = %d, want default", got)
	}
	if got := c.GetInt("BAD", 9); got != 9 {
		t.Fatalf("GetInt BAD = %d, want default", got)
	}
	if got := c.GetInt("MISSING", 11); got != 11 {
		t.Fatalf("GetInt MISSING = %d, want default", got)
	}
}
