package keys

import "testing"

func TestPrimaryKeyFormat(t *testing.T) {
	c := Codec{GlobalPrefix: "app", GlobalVersion: 2, LocalPrefix: "user", LocalVersion: 3}
	if got, want := c.Primary("7"), "app:v2:user:v3:#7"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	// pure function: identical calls, identical strings
	if c.Primary("7") != c.Primary("7") {
		t.Fatalf("Primary not deterministic")
	}
}

func TestIndexKeyFormat(t *testing.T) {
	c := Codec{GlobalPrefix: "app", GlobalVersion: 1, LocalPrefix: "user", LocalVersion: 1}

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "infra", "app:v1:user:v1:index:team:infra"},
		{"nil", nil, "app:v1:user:v1:index:team:" + NilValue},
		{"empty string", "", "app:v1:user:v1:index:team:"},
		{"int", 7, "app:v1:user:v1:index:team:7"},
		{"bool", true, "app:v1:user:v1:index:team:true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Index("team", tc.value); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}

	// nil and empty string never collide
	if c.Index("team", nil) == c.Index("team", "") {
		t.Fatalf("nil value must not collide with empty string")
	}
}

func TestVersionBumpChangesKeys(t *testing.T) {
	a := Codec{GlobalPrefix: "app", GlobalVersion: 1, LocalPrefix: "user", LocalVersion: 1}
	gv := a
	gv.GlobalVersion = 2
	lv := a
	lv.LocalVersion = 2

	if a.Primary("7") == gv.Primary("7") {
		t.Fatalf("global version bump must change keys")
	}
	if a.Primary("7") == lv.Primary("7") {
		t.Fatalf("local version bump must change keys")
	}
}

func TestAllKeyReusesIndexFormat(t *testing.T) {
	c := Codec{GlobalPrefix: "app", GlobalVersion: 1, LocalPrefix: "user", LocalVersion: 1}
	if got, want := c.All(), c.Index(AllAttribute, AllValue); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
