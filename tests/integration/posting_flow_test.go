package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/tests/testutil"
)

func TestPostingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	redisClient := testutil.NewRedisClient(t)
	router, journalUC := testutil.NewApp(t, testDB, redisClient)

	post := func(t *testing.T, path string, body any) *httptest.ResponseRecorder {
		t.Helper()
		encoded, err := json.Marshal(body)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
		r.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	t.Run("sales invoice posts a balanced entry", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := post(t, "/api/v1/postings/sales-invoice", map[string]any{
			"company_id":  "comp-1",
			"document_id": "inv-1",
			"subtotal":    "100",
			"vat_amount":  "15",
			"total":       "115",
			"vat_enabled": true,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.PostResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Regexp(t, `^JE-\d{6}-\d{5}$`, resp.EntryNumber)
		require.Equal(t, "115", resp.TotalDebit.String())
		require.Equal(t, "115", resp.TotalCredit.String())

		entry, err := journalUC.GetJournalEntry(ctx, resp.JournalEntryID)
		require.NoError(t, err)
		require.Len(t, entry.Lines, 3)
		require.True(t, entry.TotalDebit.Equal(entry.TotalCredit))
	})

	t.Run("replaying the same document does not double post", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		body := map[string]any{
			"company_id":  "comp-1",
			"document_id": "inv-2",
			"subtotal":    "200",
			"total":       "200",
		}

		first := post(t, "/api/v1/postings/sales-invoice", body)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := post(t, "/api/v1/postings/sales-invoice", body)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())
		require.Equal(t, "true", second.Header().Get("X-Idempotency-Replay"))

		var firstResp, secondResp dto.PostResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
		require.Equal(t, firstResp.JournalEntryID, secondResp.JournalEntryID)
		require.Equal(t, firstResp.EntryNumber, secondResp.EntryNumber)

		var count int
		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT count(*) FROM journal_entries").Scan(&count))
		require.Equal(t, 1, count)
	})

	t.Run("lookup by reference finds the posted entry", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := post(t, "/api/v1/postings/receipt", map[string]any{
			"company_id":       "comp-1",
			"document_id":      "rcpt-1",
			"vault_account_id": "1111",
			"amount":           "50",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		r := httptest.NewRequest(http.MethodGet,
			"/api/v1/journal-entries/by-reference?company_id=comp-1&reference_type=receipt&reference_id=rcpt-1", nil)
		lookup := httptest.NewRecorder()
		router.ServeHTTP(lookup, r)
		require.Equal(t, http.StatusOK, lookup.Code, lookup.Body.String())

		var entry dto.JournalEntryResponse
		require.NoError(t, json.Unmarshal(lookup.Body.Bytes(), &entry))
		require.Equal(t, "rcpt-1", entry.ReferenceID)
		require.Len(t, entry.Lines, 2)
	})

	t.Run("unbalanced generic entry is rejected before any write", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := post(t, "/api/v1/journal-entries/", map[string]any{
			"company_id":     "comp-1",
			"reference_type": "sales_invoice",
			"reference_id":   "inv-bad",
			"lines": []map[string]any{
				{"account_id": "1130", "debit": "200", "credit": "0"},
				{"account_id": "4100", "debit": "0", "credit": "100"},
			},
		})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		var count int
		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT count(*) FROM journal_entries").Scan(&count))
		require.Zero(t, count)

		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT count(*) FROM idempotency_keys").Scan(&count))
		require.Zero(t, count)
	})

	t.Run("posting writes an outbox event in the same transaction", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		w := post(t, "/api/v1/postings/payment", map[string]any{
			"company_id":      "comp-1",
			"document_id":     "pay-1",
			"bank_account_id": "1121",
			"amount":          "80",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var eventType string
		require.NoError(t, testDB.Pool.QueryRow(ctx,
			"SELECT event_type FROM outbox_events WHERE published = false").Scan(&eventType))
		require.Equal(t, "journal_entry.posted", eventType)
	})
}
