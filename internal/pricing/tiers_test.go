package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

func tierSet() []types.PriceTier {
	return []types.PriceTier{
		{Name: "Atacado 50", MinQuantity: 50, Price: decimal.NewFromInt(6), Order: 3, IsActive: true},
		{Name: "Atacado 20", MinQuantity: 20, Price: decimal.NewFromInt(7), Order: 2, IsActive: true},
		{Name: "Atacado 10", MinQuantity: 10, Price: decimal.NewFromInt(8), Order: 1, IsActive: true},
		{Name: "Inativo 5", MinQuantity: 5, Price: decimal.NewFromInt(1), Order: 0, IsActive: false},
	}
}

func TestSelectTierPicksHighestSatisfied(t *testing.T) {
	t.Parallel()

	current, next := SelectTier(tierSet(), 25)
	if current == nil || current.MinQuantity != 20 {
		t.Fatalf("expected tier with min 20, got %+v", current)
	}
	if next == nil || next.MinQuantity != 50 {
		t.Fatalf("expected next tier with min 50, got %+v", next)
	}
	if got := NextTierQuantityNeeded(next, 25); got != 25 {
		t.Fatalf("expected 25 more units needed, got %d", got)
	}
}

func TestSelectTierIgnoresInactive(t *testing.T) {
	t.Parallel()

	current, next := SelectTier(tierSet(), 6)
	if current != nil {
		t.Fatalf("inactive tier should never win, got %+v", current)
	}
	if next == nil || next.MinQuantity != 10 {
		t.Fatalf("expected next tier with min 10, got %+v", next)
	}
}

func TestSelectTierBelowAllThresholds(t *testing.T) {
	t.Parallel()

	current, next := SelectTier(tierSet(), 1)
	if current != nil {
		t.Fatalf("expected no current tier, got %+v", current)
	}
	if next == nil || next.MinQuantity != 10 {
		t.Fatalf("expected next tier with min 10, got %+v", next)
	}
}

func TestSelectTierTieBrokenByInputOrder(t *testing.T) {
	t.Parallel()

	tiers := []types.PriceTier{
		{Name: "first", MinQuantity: 10, Price: decimal.NewFromInt(8), IsActive: true},
		{Name: "second", MinQuantity: 10, Price: decimal.NewFromInt(7), IsActive: true},
	}
	current, _ := SelectTier(tiers, 12)
	if current == nil || current.Name != "first" {
		t.Fatalf("expected first tier to win the tie, got %+v", current)
	}
}

func TestTierMonotonicity(t *testing.T) {
	t.Parallel()

	tiers := tierSet()
	prevRank := -1
	for qty := 1; qty <= 60; qty++ {
		current, _ := SelectTier(tiers, qty)
		rank := 0
		if current != nil {
			rank = current.MinQuantity
		}
		if rank < prevRank {
			t.Fatalf("tier rank regressed at qty %d: %d -> %d", qty, prevRank, rank)
		}
		prevRank = rank
	}
}

func TestNextTierPotentialSavings(t *testing.T) {
	t.Parallel()

	next := &types.TierInfo{Name: "Atacado 50", MinQuantity: 50, Price: decimal.NewFromInt(6)}
	savings := NextTierPotentialSavings(decimal.NewFromInt(7), next)
	if savings == nil || !savings.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected savings of 1, got %v", savings)
	}

	if got := NextTierPotentialSavings(decimal.NewFromInt(5), next); got != nil {
		t.Fatalf("savings must never be negative, got %v", got)
	}
	if got := NextTierPotentialSavings(decimal.NewFromInt(6), next); got != nil {
		t.Fatalf("zero savings should be nil, got %v", got)
	}
}
