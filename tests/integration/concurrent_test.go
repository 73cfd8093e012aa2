package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/tests/testutil"
)

func TestConcurrentPosting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	redisClient := testutil.NewRedisClient(t)
	router, _ := testutil.NewApp(t, testDB, redisClient)

	post := func(docID string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]any{
			"company_id":  "comp-1",
			"document_id": docID,
			"subtotal":    "100",
			"total":       "100",
		})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/postings/sales-invoice", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	t.Run("concurrent documents get unique entry numbers", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		const workers = 10

		var wg sync.WaitGroup
		results := make([]*httptest.ResponseRecorder, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = post(fmt.Sprintf("inv-%d", i))
			}(i)
		}
		wg.Wait()

		numbers := make(map[string]bool, workers)
		for _, w := range results {
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var resp dto.PostResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.False(t, numbers[resp.EntryNumber], "duplicate entry number %s", resp.EntryNumber)
			numbers[resp.EntryNumber] = true
		}

		var count int
		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT count(*) FROM journal_entries").Scan(&count))
		require.Equal(t, workers, count)
	})

	t.Run("concurrent duplicates post exactly once", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		const workers = 10

		var wg sync.WaitGroup
		results := make([]*httptest.ResponseRecorder, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = post("inv-dup")
			}(i)
		}
		wg.Wait()

		// Every caller sees a success, a replay, or an in-flight conflict.
		for _, w := range results {
			require.Contains(t,
				[]int{http.StatusCreated, http.StatusOK, http.StatusConflict},
				w.Code, w.Body.String())
		}

		var count int
		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT count(*) FROM journal_entries").Scan(&count))
		require.Equal(t, 1, count)
	})
}
