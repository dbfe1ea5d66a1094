package pagination

import "testing"

func TestClampPageSize(t *testing.T) {
	t.Parallel()

	cfg := PageSizeConfig{Default: 9, Max: 50}
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{name: "zero uses default", value: 0, want: 9},
		{name: "negative uses default", value: -3, want: 9},
		{name: "within range", value: 12, want: 12},
		{name: "above max", value: 500, want: 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampPageSize(tc.value, cfg); got != tc.want {
				t.Fatalf("ClampPageSize(%d) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
	if got := ClampPageSize(0, PageSizeConfig{}); got != 1 {
		t.Fatalf("ClampPageSize with empty config = %d, want 1", got)
	}
}

func TestParseAndFormatPage(t *testing.T) {
	t.Parallel()

	if page, err := ParsePage(""); err != nil || page != 1 {
		t.Fatalf("ParsePage(\"\") = %d, %v, want 1", page, err)
	}
	if page, err := ParsePage(FormatPage(3)); err != nil || page != 3 {
		t.Fatalf("ParsePage(FormatPage(3)) = %d, %v, want 3", page, err)
	}
	if FormatPage(1) != "" {
		t.Fatalf("FormatPage(1) = %q, want empty", FormatPage(1))
	}
	for _, bad := range []string{"0", "-1", "two"} {
		if _, err := ParsePage(bad); err == nil {
			t.Fatalf("ParsePage(%q) expected error", bad)
		}
	}
}

func TestHasMore(t *testing.T) {
	t.Parallel()

	if !HasMoreByTotal(1, 2, 3) {
		t.Fatal("expected more after page 1 of 3 items with limit 2")
	}
	if HasMoreByTotal(2, 2, 3) {
		t.Fatal("expected no more after page 2 of 3 items with limit 2")
	}
	if HasMoreByTotal(0, 2, 3) {
		t.Fatal("expected invalid page to report no more")
	}
	if !HasMoreByFill(6, 6) || HasMoreByFill(5, 6) {
		t.Fatal("HasMoreByFill mismatch")
	}
}
