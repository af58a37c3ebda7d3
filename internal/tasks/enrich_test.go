package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/atredan/sheetgram/internal/models"
	"github.com/atredan/sheetgram/internal/shared"
	tu "github.com/atredan/sheetgram/internal/testing"
)

// testConfig returns the default layout with all delays zeroed so tests run fast.
func testConfig() *shared.Config {
	config := shared.DefaultConfig()
	config.Rate = shared.RateConfig{BatchSize: 10}
	return config
}

const adaOutput = "Informations about     : ada\nuserID                 : 42\nFull Name              : Ada Lovelace\nVerified               : True | Is buisness Account : False\nFollower               : 120\nFollowing              : 85\nNumber of posts        : 7\nBiography              : mathematics\n"

func newTestEngine(sheet *tu.MockSheetClient, fetcher *tu.MockFetcher) *EnrichEngine {
	return NewEnrichEngine(sheet, fetcher, testConfig(), shared.NewLogger(io.Discard))
}

func TestEnrichEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("missing dependencies", func(t *testing.T) {
		engine := NewEnrichEngine(nil, &tu.MockFetcher{}, testConfig(), nil)
		if _, err := engine.Run(ctx, nil, EnrichOpts{}); err == nil {
			t.Error("expected error for nil sheet client")
		}

		engine = NewEnrichEngine(&tu.MockSheetClient{}, nil, testConfig(), nil)
		if _, err := engine.Run(ctx, nil, EnrichOpts{}); err == nil {
			t.Error("expected error for nil fetcher")
		}
	})

	t.Run("empty sheet exits early without error", func(t *testing.T) {
		sheet := &tu.MockSheetClient{}
		engine := newTestEngine(sheet, &tu.MockFetcher{})

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 {
			t.Errorf("expected no rows visited, got %d", result.Total)
		}
		if len(sheet.Updates) != 0 {
			t.Errorf("expected no updates, got %d", len(sheet.Updates))
		}
	})

	t.Run("read failure aborts the run", func(t *testing.T) {
		sheet := &tu.MockSheetClient{ReadErr: errors.New("boom")}
		engine := newTestEngine(sheet, &tu.MockFetcher{})

		if _, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"}); err == nil {
			t.Error("expected read failure to abort")
		}
	})

	t.Run("updates a row with the fixed column layout", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"ada": adaOutput}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Updated != 1 {
			t.Fatalf("expected 1 update, got %d", result.Updated)
		}
		if len(sheet.Updates) != 1 {
			t.Fatalf("expected 1 recorded update, got %d", len(sheet.Updates))
		}

		update := sheet.Updates[0]
		if update.Range != "G2:S2" {
			t.Errorf("expected range G2:S2, got %s", update.Range)
		}
		if len(update.Values) != models.FieldCount {
			t.Fatalf("expected %d values, got %d", models.FieldCount, len(update.Values))
		}
		if update.Values[0] != "120" || update.Values[1] != "85" {
			t.Errorf("expected Follower/Following first, got %v", update.Values[:2])
		}
		if update.Values[4] != "Ada Lovelace" {
			t.Errorf("expected Full Name at position 4, got %q", update.Values[4])
		}
		// Pipe-joined sub-fields land in their own columns.
		if update.Values[5] != "True" || update.Values[7] != "False" {
			t.Errorf("expected Verified/business split, got %v", update.Values)
		}
		// Fields the lookup never reported stay empty.
		if update.Values[10] != "" || update.Values[12] != "" {
			t.Errorf("expected empty optional columns, got %v", update.Values)
		}
	})

	t.Run("skips already enriched rows", func(t *testing.T) {
		enriched := models.Row{"ada", "", "", "", "", "", "120"}
		sheet := &tu.MockSheetClient{Rows: []models.Row{enriched, {"grace"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"grace": "Follower: 9"}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Skipped != 1 || result.Updated != 1 {
			t.Errorf("expected 1 skipped and 1 updated, got %d/%d", result.Skipped, result.Updated)
		}
		if len(fetcher.Calls) != 1 || fetcher.Calls[0] != "grace" {
			t.Errorf("expected a single lookup for grace, got %v", fetcher.Calls)
		}
		// The second fetched row is sheet row 3.
		if len(sheet.Updates) != 1 || sheet.Updates[0].Range != "G3:S3" {
			t.Errorf("expected update at G3:S3, got %v", sheet.Updates)
		}
	})

	t.Run("force reprocesses enriched rows", func(t *testing.T) {
		enriched := models.Row{"ada", "", "", "", "", "", "120"}
		sheet := &tu.MockSheetClient{Rows: []models.Row{enriched}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"ada": "Follower: 130"}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess", Force: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Updated != 1 {
			t.Errorf("expected forced update, got %+v", result)
		}
	})

	t.Run("skips empty usernames", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"   "}, {"grace"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"grace": "Follower: 9"}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Skipped != 1 || result.Updated != 1 {
			t.Errorf("expected 1 skipped and 1 updated, got %+v", result)
		}
	})

	t.Run("test mode processes exactly the first row", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}, {"grace"}, {"ida"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"ada": "Follower: 1"}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess", TestMode: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("expected 1 row visited, got %d", result.Total)
		}
		if len(fetcher.Calls) != 1 {
			t.Errorf("expected 1 lookup, got %v", fetcher.Calls)
		}
	})

	t.Run("failed lookup advances the loop", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}, {"grace"}}}
		fetcher := &tu.MockFetcher{
			Output: map[string]string{"grace": "Follower: 9"},
			ErrFor: map[string]error{"ada": fmt.Errorf("%w: ada", shared.ErrLookupFailed)},
		}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("run should not fail on a lookup error: %v", err)
		}
		if result.NoData != 1 || result.Updated != 1 {
			t.Errorf("expected 1 no-data and 1 updated, got %+v", result)
		}
	})

	t.Run("unparseable output yields no write", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"ada": "no fields here"}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.NoData != 1 || len(sheet.Updates) != 0 {
			t.Errorf("expected no-data outcome without a write, got %+v", result)
		}
	})

	t.Run("write failure continues with the next row", func(t *testing.T) {
		sheet := &tu.MockSheetClient{
			Rows:         []models.Row{{"ada"}, {"grace"}},
			UpdateErrFor: map[string]error{"G2:S2": errors.New("quota")},
		}
		fetcher := &tu.MockFetcher{Output: map[string]string{
			"ada":   "Follower: 1",
			"grace": "Follower: 2",
		}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("run should not fail on a row write error: %v", err)
		}
		if result.Failed != 1 || result.Updated != 1 {
			t.Errorf("expected 1 failed and 1 updated, got %+v", result)
		}
		if len(sheet.Updates) != 1 || sheet.Updates[0].Range != "G3:S3" {
			t.Errorf("expected only G3:S3 written, got %v", sheet.Updates)
		}
	})

	t.Run("outcomes carry sheet row numbers", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}, {""}, {"ida"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{
			"ada": "Follower: 1",
			"ida": "Follower: 3",
		}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(ctx, nil, EnrichOpts{Session: "sess"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Outcomes) != 3 {
			t.Fatalf("expected 3 outcomes, got %d", len(result.Outcomes))
		}
		for i, outcome := range result.Outcomes {
			if outcome.Index != 2+i {
				t.Errorf("outcome %d: expected sheet row %d, got %d", i, 2+i, outcome.Index)
			}
		}
		if result.Outcomes[1].Status != RowSkippedEmpty {
			t.Errorf("expected middle row skipped, got %s", result.Outcomes[1].Status)
		}
	})

	t.Run("cancelled context aborts with partial result", func(t *testing.T) {
		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}, {"grace"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"ada": "Follower: 1"}}
		engine := newTestEngine(sheet, fetcher)

		result, err := engine.Run(cancelledCtx, nil, EnrichOpts{Session: "sess"})
		if err == nil {
			t.Error("expected context error")
		}
		if result == nil {
			t.Error("expected partial result alongside the error")
		}
	})

	t.Run("progress updates are emitted", func(t *testing.T) {
		sheet := &tu.MockSheetClient{Rows: []models.Row{{"ada"}}}
		fetcher := &tu.MockFetcher{Output: map[string]string{"ada": "Follower: 1"}}
		engine := newTestEngine(sheet, fetcher)

		progress := make(chan ProgressUpdate, 50)
		if _, err := engine.Run(ctx, progress, EnrichOpts{Session: "sess"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) == 0 {
			t.Fatal("expected progress updates")
		}
		if phases[0] != FetchRows {
			t.Errorf("expected first update to be fetch_rows, got %s", phases[0])
		}
		if phases[len(phases)-1] != Finished {
			t.Errorf("expected last update to be finished, got %s", phases[len(phases)-1])
		}
	})
}
