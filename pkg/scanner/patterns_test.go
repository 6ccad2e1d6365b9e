package scanner

import (
	"reflect"
	"regexp"
	"testing"
)

func TestMatchFileName(t *testing.T) {
	units := Grammar{Literal("unit"), Wildcard(), Wildcard()}

	tests := []struct {
		name     string
		grammar  Grammar
		input    string
		wantOK   bool
		wantCaps []string
	}{
		{"empty grammar", Grammar{}, "abc", false, nil},
		{"wildcard", Grammar{Wildcard()}, "abc", true, []string{"abc"}},
		{"literal equal", Grammar{Literal("abc")}, "abc", true, []string{}},
		{"literal differs", Grammar{Literal("def")}, "abc", false, nil},
		{"unit value", units, "unit-termite-color", true, []string{"termite", "color"}},
		{"too few tokens", units, "unit-bad", false, nil},
		{"too many tokens", units, "unit-a-b-c", false, nil},
		{"wrong literal", units, "item-termite-color", false, nil},
		{"empty token", units, "unit--color", false, nil},
		{"dir wildcard in file", Grammar{Literal("theme"), DirWildcard()}, "theme-dark", false, nil},
		{"escaped", Grammar{Wildcard()}, "_abc", false, nil},
		{"hook", Grammar{Literal("hook"), Wildcard(), Wildcard()}, "hook-preinstall-foo", true, []string{"preinstall", "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchFileName(tt.grammar, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("MatchFileName(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(got, tt.wantCaps) {
				t.Errorf("MatchFileName(%q) = %q, want %q", tt.input, got, tt.wantCaps)
			}
		})
	}
}

func TestMatchFileName_Pattern(t *testing.T) {
	g := Grammar{Literal("unit"), MustPattern(`^(.*)\.toml$`)}

	got, ok := MatchFileName(g, "unit-test.toml")
	if !ok {
		t.Fatal("expected unit-test.toml to match")
	}
	if !reflect.DeepEqual(got, []string{"test"}) {
		t.Errorf("captures = %q, want [test]", got)
	}

	if _, ok := MatchFileName(g, "unit-test.txt"); ok {
		t.Error("expected unit-test.txt not to match")
	}
}

func TestMatchFileName_PatternGroups(t *testing.T) {
	g := Grammar{Pattern(regexp.MustCompile(`^(\w+)\.(\w+)(\.bak)?$`))}

	got, ok := MatchFileName(g, "colors.yaml")
	if !ok {
		t.Fatal("expected colors.yaml to match")
	}
	want := []string{"colors", "yaml", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("captures = %q, want %q", got, want)
	}
	if len(got) != g.ExpectedCaptures() {
		t.Errorf("len(captures) = %d, want %d", len(got), g.ExpectedCaptures())
	}
}

func TestMatchDirName(t *testing.T) {
	theme := Grammar{
		Literal("theme"),
		DirWildcard(),
		Literal("unit"),
		Wildcard(),
		Wildcard(),
	}
	units := Grammar{Literal("unit"), Wildcard(), Wildcard()}

	tests := []struct {
		name         string
		grammar      Grammar
		input        string
		wantOK       bool
		wantCaps     []string
		wantConsumed int
	}{
		{"empty grammar", Grammar{}, "abc", false, nil, 0},
		{"wildcard as last node", Grammar{Wildcard()}, "abc", false, nil, 0},
		{"too many tokens", Grammar{Wildcard()}, "abc-def", false, nil, 0},
		{"dir wildcard", Grammar{DirWildcard()}, "abc", true, []string{"abc"}, 1},
		{"dir wildcard with dashes", Grammar{DirWildcard()}, "abc-def", false, nil, 0},
		{"container", Grammar{Literal("theme"), Wildcard()}, "themes", true, []string{}, 1},
		{"singular literal", Grammar{Literal("theme"), Wildcard()}, "theme", false, nil, 0},
		{"themes container", theme, "themes", true, []string{}, 1},
		{"theme dir", theme, "theme-dark", true, []string{"dark"}, 2},
		{"theme dir with dashes", Grammar{Literal("theme"), DirWildcard()}, "theme-solarized-light", false, nil, 0},
		{"theme units container", theme, "theme-dark-units", true, []string{"dark"}, 3},
		{"theme unit prefix", theme, "theme-dark-unit-termite", true, []string{"dark", "termite"}, 4},
		{"units container", units, "units", true, []string{}, 1},
		{"unit prefix", units, "unit-termite", true, []string{"termite"}, 2},
		{"unit full arity", units, "unit-termite-color", false, nil, 0},
		{"wildcard before remaining nodes", units, "unit-termites", true, []string{"termites"}, 2},
		{"escaped container", Grammar{Literal("unit"), Wildcard()}, "_units", false, nil, 0},
		{"pattern prefix", Grammar{MustPattern(`^v(\d+)$`), Wildcard()}, "v2", true, []string{"2"}, 1},
		{"pattern prefix fails", Grammar{MustPattern(`^v(\d+)$`), Wildcard()}, "vx", false, nil, 0},
		{"dir wildcard not terminal token", Grammar{Wildcard(), DirWildcard()}, "a-b-c", false, nil, 0},
		{"dir wildcard last token", Grammar{Wildcard(), DirWildcard()}, "a-b", true, []string{"a", "b"}, 2},
		{"dir wildcard before nodes", Grammar{DirWildcard(), Literal("unit"), Wildcard()}, "dark-units", true, []string{"dark"}, 2},
		{"empty dir wildcard token", Grammar{Literal("theme"), DirWildcard()}, "theme-", false, nil, 0},
		{"literal before plural", Grammar{Literal("theme"), Literal("unit"), Wildcard()}, "theme-units", true, []string{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchDirName(tt.grammar, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("MatchDirName(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(got.Captures, tt.wantCaps) {
				t.Errorf("MatchDirName(%q).Captures = %q, want %q", tt.input, got.Captures, tt.wantCaps)
			}
			if got.Consumed != tt.wantConsumed {
				t.Errorf("MatchDirName(%q).Consumed = %d, want %d", tt.input, got.Consumed, tt.wantConsumed)
			}
		})
	}
}

func TestMatchDirName_FileDoesNotMatchThemeGrammar(t *testing.T) {
	theme := Grammar{
		Literal("theme"),
		DirWildcard(),
		Literal("unit"),
		Wildcard(),
		Wildcard(),
	}
	if _, ok := MatchFileName(theme, "theme-dark-unit-termite-color"); ok {
		t.Error("a dir wildcard must never match in a file name")
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"theme", "themes"},
		{"unit", "units"},
		{"hook", "hooks"},
		{"glass", "glasss"},
	}

	for _, tt := range tests {
		if got := Plural(tt.input); got != tt.want {
			t.Errorf("Plural(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGrammar_ExpectedCaptures(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		want    int
	}{
		{"literals only", Grammar{Literal("a"), Literal("b")}, 0},
		{"wildcards", Grammar{Literal("hook"), Wildcard(), Wildcard()}, 2},
		{"dir wildcard", Grammar{Literal("theme"), DirWildcard()}, 1},
		{"pattern groups", Grammar{MustPattern(`^(a)(b)?$`), Wildcard()}, 3},
		{"pattern no groups", Grammar{MustPattern(`^a$`)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.grammar.ExpectedCaptures(); got != tt.want {
				t.Errorf("ExpectedCaptures() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGrammar_Validate(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		wantErr bool
	}{
		{"empty", Grammar{}, true},
		{"empty literal", Grammar{Literal("")}, true},
		{"nil pattern", Grammar{{Kind: NodePattern}}, true},
		{"unknown kind", Grammar{{Kind: NodeKind(42)}}, true},
		{"valid", Grammar{Literal("hook"), Wildcard(), MustPattern(`^(.*)$`), DirWildcard()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grammar.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGrammar_String(t *testing.T) {
	g := Grammar{Literal("theme"), DirWildcard(), Literal("unit"), Wildcard(), MustPattern(`^(.*)$`)}
	want := "theme-**-unit-*-/^(.*)$/"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
