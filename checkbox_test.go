package socialtext

// Notes:
// - HasCheckbox/ParseCheckbox: tests every accepted box content and the
//   offset-0 and single-occurrence constraints
// - IsChecked: tests marks, blanks and short input
// - SetCheckState/ToggleCheckState: tests canonical output and the panic on
//   text without a checkbox
// - CheckboxOnly: tests that the single-rule tokenizer agrees with HasCheckbox

import (
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestHasCheckbox - Recognition
// ---------------------------------------------------------------------------

func TestHasCheckbox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"[]", true},
		{"[ ]", true},
		{"[   ] task", true},
		{"[\t]", true},
		{"[\v]", true},
		{"[\u00a0]", true},
		{"[\u2028] line separator", true},
		{"[\u2029] paragraph separator", true},
		{"[\ufeff] byte order mark", true},
		{"[x] done", true},
		{"[X] done", true},
		{"[v]", true},
		{"[V]", true},
		{"[*]", true},
		{"[✓]", true},
		{"[✔]", true},
		{"[х] cyrillic", true},
		{"[Х] cyrillic upper", true},
		{"", false},
		{"[", false},
		{"[y]", false},
		{"[xx]", false},
		{" [x] leading space", false},
		{"text [x]", false},
		{"[ ] a [x] b", false},
		{"[x] a [] b", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			t.Parallel()

			if got := HasCheckbox(tt.input); got != tt.want {
				t.Errorf("HasCheckbox(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCheckbox(t *testing.T) {
	t.Parallel()

	tok, ok := ParseCheckbox("[✓] milk")
	if !ok {
		t.Fatal("ParseCheckbox() ok = false, want true")
	}
	want := Token{Kind: KindInitialCheckbox, Offset: 0, Text: "[✓]"}
	if tok != want {
		t.Errorf("ParseCheckbox() = %+v, want %+v", tok, want)
	}

	if _, ok := ParseCheckbox("milk [x]"); ok {
		t.Error("ParseCheckbox(milk [x]) ok = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsChecked - State
// ---------------------------------------------------------------------------

func TestIsChecked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"[x] a", true},
		{"[*]", true},
		{"[✓] done", true},
		{"[х]", true},
		{"[ ] a", false},
		{"[\t]", false},
		{"[\v] a", false},
		{"[\u2028] a", false},
		{"[\u2029] a", false},
		{"[\ufeff] a", false},
		{"[]", false},
		{"[", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsChecked(tt.input); got != tt.want {
			t.Errorf("IsChecked(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSetCheckState - Rewriting
// ---------------------------------------------------------------------------

func TestSetCheckState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		checked bool
		want    string
	}{
		{"uncheck trims remainder", "[x]   buy milk  ", false, "[ ] buy milk"},
		{"check empty box", "[] buy", true, "[✓] buy"},
		{"check replaces mark", "[v] buy", true, "[✓] buy"},
		{"no remainder", "[ ]", true, "[✓] "},
		{"multi-line remainder", "[ ] a\nb\n", false, "[ ] a\nb"},
		{"separators in box and remainder", "[\u2028]\ufeff a\u2029", true, "[✓] a"},
		{"vertical tab in box", "[\v] a\v", true, "[✓] a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SetCheckState(tt.input, tt.checked); got != tt.want {
				t.Errorf("SetCheckState(%q, %v) = %q, want %q", tt.input, tt.checked, got, tt.want)
			}
		})
	}
}

func TestSetCheckState_PanicsWithoutCheckbox(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("SetCheckState() did not panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, ErrNoCheckbox.Error()) {
			t.Errorf("panic value = %v, want message containing %q", r, ErrNoCheckbox)
		}
	}()

	SetCheckState("no box here", true)
}

func TestToggleCheckState(t *testing.T) {
	t.Parallel()

	if got := ToggleCheckState("[x] a"); got != "[ ] a" {
		t.Errorf("ToggleCheckState([x] a) = %q, want %q", got, "[ ] a")
	}
	if got := ToggleCheckState("[ ] a"); got != "[✓] a" {
		t.Errorf("ToggleCheckState([ ] a) = %q, want %q", got, "[✓] a")
	}
	if got := ToggleCheckState(ToggleCheckState("[✓] a")); got != "[✓] a" {
		t.Errorf("double toggle = %q, want %q", got, "[✓] a")
	}
}

// ---------------------------------------------------------------------------
// TestCheckboxOnly - Single-Rule Pipeline
// ---------------------------------------------------------------------------

func TestCheckboxOnly_AgreesWithHasCheckbox(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenizer(CheckboxOnly())
	if err != nil {
		t.Fatalf("NewTokenizer() unexpected error: %v", err)
	}

	inputs := []string{"", "[x]", "[ ] a", "a [x]", "[x] [x]", "[y] a", "[✔] #tag https://x.com"}
	for _, input := range inputs {
		toks := tok.Tokenize(input)
		got := len(toks) > 0 && toks[0].Kind == KindInitialCheckbox
		if got != HasCheckbox(input) {
			t.Errorf("%q: checkbox-only tokenizer = %v, HasCheckbox = %v", input, got, HasCheckbox(input))
		}
	}
}
