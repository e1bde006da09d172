package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/aggregate"
	"rdalreport/internal/reporting/domain/code"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	entries := []aggregate.Entry{
		{Code: "4211075000000Y", Indicator: code.IndicatorDebit, Amount: decimal.NewFromInt(2000)},
	}
	if err := store.SaveEntries(ctx, "2026-03-07", code.GranularityWeekly, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.ListEntries(ctx, "2026-03-07", code.GranularityWeekly)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Code != "4211075000000Y" {
		t.Fatalf("loaded %+v", loaded)
	}

	// Mutating the loaded slice must not touch the stored snapshot.
	loaded[0].Code = "XXXXXXXXXXXXXX"
	again, _ := store.ListEntries(ctx, "2026-03-07", code.GranularityWeekly)
	if again[0].Code != "4211075000000Y" {
		t.Fatalf("store aliased its entries")
	}
}

func TestSnapshotStoreSeparatesGranularities(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	_ = store.SaveEntries(ctx, "run", code.GranularityWeekly, []aggregate.Entry{
		{Code: "4211075000000Y", Indicator: code.IndicatorDebit, Amount: decimal.NewFromInt(1)},
	})
	_ = store.SaveEntries(ctx, "run", code.GranularityMonthly, []aggregate.Entry{
		{Code: "5850003000000Y", Indicator: code.IndicatorDebit, Amount: decimal.NewFromInt(2)},
	})

	weekly, _ := store.ListEntries(ctx, "run", code.GranularityWeekly)
	monthly, _ := store.ListEntries(ctx, "run", code.GranularityMonthly)
	if len(weekly) != 1 || len(monthly) != 1 || weekly[0].Code == monthly[0].Code {
		t.Fatalf("granularities mixed: %v / %v", weekly, monthly)
	}

	missing, err := store.ListEntries(ctx, "run", code.GranularityQuarterly)
	if err != nil || missing != nil {
		t.Fatalf("absent snapshot must be nil, got %v / %v", missing, err)
	}
}

func TestSnapshotStoreRejectsEmptyRunID(t *testing.T) {
	if err := NewSnapshotStore().SaveEntries(context.Background(), "", code.GranularityWeekly, nil); err == nil {
		t.Fatalf("expected error for empty run id")
	}
}
