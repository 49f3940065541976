package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-catalog-service/internal/domain"
)

var sampleProducts = []domain.Product{
	{ID: 1, Name: "PVC Pipe 4 inch", Category: "pipes", Price: "$12.99", Description: "Drainage.", Icon: "🚿"},
	{ID: 7, Name: "Ceramic Wash Basin", Category: "bathroom/sanitary", Price: "$89.99", Description: "Sleek.", Icon: "img/basin.PNG"},
	{ID: 9, Name: "Sealant", Category: "water-proof_coatings", Price: "$5.00", Description: "Tube.", Icon: "https://cdn.example.com/sealant.webp?v=2"},
}

func TestRender_Loading(t *testing.T) {
	g := Render(domain.DefaultQueryState(), sampleProducts, false)

	assert.Equal(t, GridLoading, g.Kind)
	require.NotNil(t, g.Loading)
	assert.Equal(t, "Loading products...", g.Loading.Message)
	assert.Empty(t, g.Cards)
	assert.Nil(t, g.Empty)
}

func TestRender_Cards(t *testing.T) {
	g := Render(domain.DefaultQueryState(), sampleProducts, true)

	require.Equal(t, GridCards, g.Kind)
	require.Equal(t, 3, g.Len())

	first := g.Cards[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, Icon{Kind: IconGlyph, Glyph: "🚿"}, first.Icon)
	assert.Equal(t, "Pipes", first.CategoryLabel)
	assert.Equal(t, "$12.99", first.Price)
	assert.Equal(t, "Drainage.", first.Description)
	assert.Equal(t, time.Duration(0), first.Delay)

	second := g.Cards[1]
	assert.Equal(t, IconImage, second.Icon.Kind)
	assert.Equal(t, "img/basin.PNG", second.Icon.Src)
	assert.Equal(t, PlaceholderGlyph, second.Icon.Placeholder)
	assert.Equal(t, "Bathroom sanitary", second.CategoryLabel)
	assert.Equal(t, 100*time.Millisecond, second.Delay)
	assert.Equal(t, int64(100), second.DelayMillis)

	third := g.Cards[2]
	assert.Equal(t, IconImage, third.Icon.Kind)
	assert.Equal(t, "Water proof coatings", third.CategoryLabel)
	assert.Equal(t, int64(200), third.DelayMillis)
}

func TestRender_EmptyWithSearchTerm(t *testing.T) {
	state := domain.QueryState{ActiveCategory: domain.CategoryAll, SearchTerm: "zzz"}
	g := Render(state, nil, true)

	require.Equal(t, GridEmpty, g.Kind)
	require.NotNil(t, g.Empty)
	assert.Contains(t, g.Empty.Message, "zzz")
	assert.Equal(t, "zzz", g.Empty.Term)
	assert.True(t, g.Empty.ShowClear)
	assert.NotEmpty(t, g.Empty.Hint)
}

func TestRender_EmptyMessageKeepsTermVerbatim(t *testing.T) {
	for _, term := range []string{`6" pipe`, `c:\tools`, "a\tb", "ñandú"} {
		g := Render(domain.QueryState{ActiveCategory: domain.CategoryAll, SearchTerm: term}, nil, true)

		require.NotNil(t, g.Empty, "term %s", term)
		assert.Equal(t, `No products found for "`+term+`"`, g.Empty.Message)
		assert.Contains(t, g.Empty.Message, term)
	}
}

func TestRender_EmptyWithoutSearchTerm(t *testing.T) {
	state := domain.QueryState{ActiveCategory: "waterproof"}
	g := Render(state, []domain.Product{}, true)

	require.Equal(t, GridEmpty, g.Kind)
	assert.Equal(t, "No products found in this category", g.Empty.Message)
	assert.False(t, g.Empty.ShowClear)
	assert.Empty(t, g.Empty.Term)
}

func TestIsImageRef(t *testing.T) {
	cases := map[string]bool{
		"🔨":                         false,
		"images/hammer.png":         true,
		"images/hammer.JPG":         true,
		"hammer.jpeg":               true,
		"anim.gif":                  true,
		"logo.svg":                  true,
		"photo.avif":                true,
		"https://x.io/a.webp?w=300": true,
		"https://x.io/a.png#zoom":   true,
		"a.png.txt":                 false,
		".png":                      false,
		"png":                       false,
		"":                          false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsImageRef(in), "icon %q", in)
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := map[string]string{
		"steel":             "Steel",
		"bathroom/sanitary": "Bathroom sanitary",
		"water-proof":       "Water proof",
		"hand__tools":       "Hand tools",
		"électricals":       "Électricals",
		"all":               "All Products",
		"":                  "",
		"//":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CategoryLabel(in), "category %q", in)
	}
}

func TestFilters(t *testing.T) {
	controls := Filters([]string{"pipes", "steel"}, "steel")

	require.Len(t, controls, 3)
	assert.Equal(t, FilterControl{Category: "all", Label: "All Products", Active: false}, controls[0])
	assert.Equal(t, FilterControl{Category: "pipes", Label: "Pipes", Active: false}, controls[1])
	assert.Equal(t, FilterControl{Category: "steel", Label: "Steel", Active: true}, controls[2])

	active := 0
	for _, c := range Filters([]string{"pipes", "steel"}, "all") {
		if c.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestAdjacentFilter(t *testing.T) {
	assert.Equal(t, 1, AdjacentFilter(5, 2, KeyArrowLeft))
	assert.Equal(t, 3, AdjacentFilter(5, 2, KeyArrowRight))
	assert.Equal(t, 0, AdjacentFilter(5, 0, KeyArrowLeft), "no wrap at start")
	assert.Equal(t, 4, AdjacentFilter(5, 4, KeyArrowRight), "no wrap at end")
	assert.Equal(t, 2, AdjacentFilter(5, 2, "Enter"))
	assert.Equal(t, 0, AdjacentFilter(0, 0, KeyArrowRight))
}
