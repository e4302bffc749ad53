package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel_store/internal/slug"
)

func TestMake(t *testing.T) {
	g := slug.New()
	cases := map[string]string{
		"Lakeview Cabin":             "lakeview-cabin",
		"Loft":                       "loft",
		"Lakeview Cabin — Renovated": "lakeview-cabin-renovated",
		"  Sea   View!! ":            "sea-view",
		"Café Déjà Vu":               "cafe-deja-vu",
		"family_suite":               "family-suite",
		"Room 101":                   "room-101",
	}
	for in, want := range cases {
		assert.Equal(t, want, g.Make(in), "input %q", in)
	}
}

func TestMake_FallbackIsTotal(t *testing.T) {
	g := slug.New()
	for _, in := range []string{"", "   ", "\t\n", "!!!", "---"} {
		assert.Equal(t, slug.Fallback, g.Make(in), "input %q", in)
	}
}

func TestMake_Deterministic(t *testing.T) {
	g := slug.New()
	assert.Equal(t, g.Make("Ocean Breeze Villa"), g.Make("Ocean Breeze Villa"))
	assert.Equal(t, g.Make("Ocean Breeze Villa"), slug.New().Make("Ocean Breeze Villa"))
}

func TestUnique(t *testing.T) {
	g := slug.New()

	assert.Equal(t, "loft", g.Unique("Loft", nil))

	taken := map[string]struct{}{"loft": {}}
	assert.Equal(t, "loft-2", g.Unique("Loft", taken))

	taken["loft-2"] = struct{}{}
	taken["loft-3"] = struct{}{}
	assert.Equal(t, "loft-4", g.Unique("LOFT", taken))

	taken = map[string]struct{}{slug.Fallback: {}}
	assert.Equal(t, "untitled-2", g.Unique("", taken))
}
