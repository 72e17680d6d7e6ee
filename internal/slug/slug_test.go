package slug

import "testing"

func TestMake_Simple(t *testing.T) {
	if got := Make("Jane Doe"); got != "jane-doe" {
		t.Errorf("Make(%q) = %q, want %q", "Jane Doe", got, "jane-doe")
	}
}

func TestMake_MessyInput(t *testing.T) {
	if got := Make("  multi   space--name!! "); got != "multi-space-name" {
		t.Errorf("got %q, want %q", got, "multi-space-name")
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{"Jane Doe", "  multi   space--name!! ", "O'Brien, Pat", "x_y-z"}
	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make(Make(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestMake_Underscore(t *testing.T) {
	if got := Make("snake_case name"); got != "snake_case-name" {
		t.Errorf("got %q", got)
	}
}

func TestMake_Empty(t *testing.T) {
	if got := Make("!!!"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
