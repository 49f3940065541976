package query

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-catalog-service/internal/domain"
	"building-catalog-service/internal/store"
	"building-catalog-service/internal/view"
)

func cardNames(p view.Page) []string {
	out := make([]string, len(p.Grid.Cards))
	for i, c := range p.Grid.Cards {
		out[i] = c.Name
	}
	return out
}

// fallbackCatalog returns a catalog loaded with the static list.
func fallbackCatalog(t *testing.T) *store.Catalog {
	t.Helper()
	c := store.NewCatalog(zerolog.Nop())
	snap := c.Load(context.Background(), nil)
	require.True(t, snap.Fallback())
	return c
}

func control(category string) view.FilterControl {
	return view.FilterControl{Category: category}
}

func TestController_SteelRebarClearScenario(t *testing.T) {
	ctrl := NewController(fallbackCatalog(t), domain.DefaultQueryState())

	page := ctrl.SetCategory(control("steel"))
	assert.Equal(t, []string{"Steel Rebar 10mm", "Steel Angle Bar"}, cardNames(page))
	assert.False(t, page.ShowClearSearch)

	page = ctrl.SetSearchTerm("rebar")
	assert.Equal(t, []string{"Steel Rebar 10mm"}, cardNames(page))
	assert.True(t, page.ShowClearSearch)

	page = ctrl.ClearSearch()
	assert.Equal(t, []string{"Steel Rebar 10mm", "Steel Angle Bar"}, cardNames(page))
	assert.Equal(t, "steel", page.State.ActiveCategory)
	assert.Equal(t, "", page.State.SearchTerm)
	assert.True(t, page.FocusSearch)
	assert.False(t, page.ShowClearSearch)
}

func TestController_NoResultsScenario(t *testing.T) {
	ctrl := NewController(fallbackCatalog(t), domain.DefaultQueryState())

	page := ctrl.SetSearchTerm("  ZZZ ")
	require.Equal(t, view.GridEmpty, page.Grid.Kind)
	assert.Equal(t, "zzz", page.State.SearchTerm)
	assert.Contains(t, page.Grid.Empty.Message, "zzz")
	assert.True(t, page.Grid.Empty.ShowClear)
}

func TestController_PipesThenAllRestoresOrder(t *testing.T) {
	ctrl := NewController(fallbackCatalog(t), domain.DefaultQueryState())

	page := ctrl.SetCategory(control("pipes"))
	assert.Equal(t, 2, page.Grid.Len())

	page = ctrl.SetCategory(control("all"))
	require.Equal(t, 16, page.Grid.Len())
	for i, c := range page.Grid.Cards {
		assert.Equal(t, int64(i+1), c.ID)
	}
}

func TestController_ActiveControlFollowsSelection(t *testing.T) {
	ctrl := NewController(fallbackCatalog(t), domain.DefaultQueryState())

	page := ctrl.SetCategory(control("cement"))
	require.Len(t, page.Filters, 9)
	for _, f := range page.Filters {
		assert.Equal(t, f.Category == "cement", f.Active, "control %q", f.Category)
	}
}

func TestController_SearchRerendersOnEveryChange(t *testing.T) {
	ctrl := NewController(fallbackCatalog(t), domain.DefaultQueryState())

	counts := []int{}
	for _, typed := range []string{"s", "st", "ste", "stee", "steel"} {
		counts = append(counts, ctrl.SetSearchTerm(typed).Grid.Len())
	}
	assert.Equal(t, 3, counts[len(counts)-1])
	for i := 1; i < len(counts); i++ {
		assert.LessOrEqual(t, counts[i], counts[i-1])
	}
}

func TestController_AbsentCatalogIsLoading(t *testing.T) {
	ctrl := NewController(store.NewCatalog(zerolog.Nop()), domain.DefaultQueryState())

	page := ctrl.SetSearchTerm("pipe")
	assert.Equal(t, view.GridLoading, page.Grid.Kind)
	assert.Equal(t, "pipe", page.State.SearchTerm)

	_, ok := ctrl.Visible()
	assert.False(t, ok)
}

func TestNewController_NormalizesInitialState(t *testing.T) {
	ctrl := NewController(fallbackCatalog(t), domain.QueryState{SearchTerm: "  PVC "})
	assert.Equal(t, domain.QueryState{ActiveCategory: "all", SearchTerm: "pvc"}, ctrl.State())
}

func TestController_UnknownCategorySelectsAll(t *testing.T) {
	for _, category := range []string{"Steel", "waterproof"} {
		ctrl := NewController(fallbackCatalog(t), domain.DefaultQueryState())

		page := ctrl.SetCategory(control(category))
		assert.Equal(t, domain.CategoryAll, page.State.ActiveCategory)
		assert.Equal(t, 16, page.Grid.Len())

		var active []string
		for _, f := range page.Filters {
			if f.Active {
				active = append(active, f.Category)
			}
		}
		assert.Equal(t, []string{domain.CategoryAll}, active, "category %q", category)
	}

	ctrl := NewController(fallbackCatalog(t), domain.QueryState{ActiveCategory: "Steel"})
	assert.Equal(t, domain.CategoryAll, ctrl.State().ActiveCategory)
}
