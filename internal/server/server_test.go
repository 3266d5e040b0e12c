package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seisan-app/seisan/internal/auth"
	"github.com/seisan-app/seisan/internal/service"
	"github.com/seisan-app/seisan/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "seisan-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	srv := New(
		store,
		service.NewContentService(store),
		service.NewSettlementService(store),
		auth.NewPasswordAuthenticator(store),
		tokens,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func registerMember(t *testing.T, ts *httptest.Server, email, nickname string) (string, int64) {
	t.Helper()

	var session struct {
		Token  string `json:"token"`
		Member struct {
			ID int64 `json:"member_id"`
		} `json:"member"`
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"email":    email,
		"nickname": nickname,
		"password": "correct-horse",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("register returned %d", status)
	}
	return session.Token, session.Member.ID
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	token, memberID := registerMember(t, ts, "alice@example.com", "Alice")
	if token == "" || memberID == 0 {
		t.Fatalf("register returned empty session: token=%q id=%d", token, memberID)
	}

	t.Run("login returns a fresh token", func(t *testing.T) {
		var session struct {
			Token string `json:"token"`
		}
		status := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "correct-horse",
		}, &session)
		if status != http.StatusOK || session.Token == "" {
			t.Errorf("login returned %d, token %q", status, session.Token)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("login with wrong password returned %d", status)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
			"email":    "alice@example.com",
			"nickname": "Alice Again",
			"password": "correct-horse",
		}, nil)
		if status != http.StatusConflict {
			t.Errorf("duplicate register returned %d", status)
		}
	})

	t.Run("profile requires a token", func(t *testing.T) {
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/profile", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("unauthenticated profile returned %d", status)
		}

		var profile struct {
			Email string `json:"email"`
		}
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/profile", token, nil, &profile); status != http.StatusOK {
			t.Errorf("profile returned %d", status)
		}
		if profile.Email != "alice@example.com" {
			t.Errorf("profile email = %q", profile.Email)
		}
	})
}

func TestContentLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token, alice := registerMember(t, ts, "alice@example.com", "Alice")
	_, bob := registerMember(t, ts, "bob@example.com", "Bob")

	var created struct {
		ID       string `json:"id"`
		Finished struct {
			Key string `json:"key"`
		} `json:"finished"`
		Liquidation []struct {
			Paid struct {
				Key   string `json:"key"`
				Label string `json:"label"`
			} `json:"paid"`
		} `json:"liquidation"`
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/contents", token, map[string]any{
		"subject":     "Dinner",
		"amount":      "1000",
		"ymd":         "2025-04-01",
		"creditor_id": alice,
		"payer":       []int64{alice, bob},
		"rate":        []string{"50", "50"},
		"payment":     []string{"500", "500"},
		"paid":        []any{1, map[string]string{"key": "0", "label": "unsettled"}},
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create content returned %d", status)
	}
	if created.Finished.Key != "0" {
		t.Errorf("finished key = %q, want 0", created.Finished.Key)
	}
	if created.Liquidation[0].Paid.Key != "1" || created.Liquidation[1].Paid.Key != "0" {
		t.Errorf("paid flags not normalized: %+v", created.Liquidation)
	}
	if created.Liquidation[1].Paid.Label != "unsettled" {
		t.Errorf("paid label = %q, want unsettled", created.Liquidation[1].Paid.Label)
	}

	t.Run("unpaid filter lists it", func(t *testing.T) {
		var list []struct {
			ID string `json:"id"`
		}
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/contents?filter=unpaid", token, nil, &list); status != http.StatusOK {
			t.Fatalf("list returned %d", status)
		}
		if len(list) != 1 || list[0].ID != created.ID {
			t.Errorf("list = %+v", list)
		}
	})

	t.Run("bad filter rejected", func(t *testing.T) {
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/contents?filter=bogus", token, nil, nil); status != http.StatusBadRequest {
			t.Errorf("bogus filter returned %d", status)
		}
	})

	t.Run("liquidation-only update settles the content", func(t *testing.T) {
		var updated struct {
			Finished struct {
				Key string `json:"key"`
			} `json:"finished"`
		}
		status := doJSON(t, http.MethodPut, ts.URL+"/api/contents/"+created.ID, token, map[string]any{
			"finished": "1",
			"paid":     []any{"1", "1"},
		}, &updated)
		if status != http.StatusOK {
			t.Fatalf("liquidation update returned %d", status)
		}
		if updated.Finished.Key != "1" {
			t.Errorf("finished key = %q after settling all rows", updated.Finished.Key)
		}
	})

	t.Run("unknown content is 404", func(t *testing.T) {
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/contents/nope", token, nil, nil); status != http.StatusNotFound {
			t.Errorf("unknown content returned %d", status)
		}
	})
}

func TestSummaryAndSettle(t *testing.T) {
	ts := newTestServer(t)
	token, alice := registerMember(t, ts, "alice@example.com", "Alice")
	_, bob := registerMember(t, ts, "bob@example.com", "Bob")

	mkContent := func(creditor, debtor int64, amount, half string) string {
		var created struct {
			ID string `json:"id"`
		}
		status := doJSON(t, http.MethodPost, ts.URL+"/api/contents", token, map[string]any{
			"subject":     fmt.Sprintf("split %s", amount),
			"amount":      amount,
			"ymd":         "2025-04-01",
			"creditor_id": creditor,
			"payer":       []int64{creditor, debtor},
			"rate":        []string{"50", "50"},
			"payment":     []string{half, half},
			"paid":        []any{"1", "0"},
		}, &created)
		if status != http.StatusCreated {
			t.Fatalf("create content returned %d", status)
		}
		return created.ID
	}

	mkContent(alice, bob, "1000", "500")
	mkContent(bob, alice, "400", "200")

	var balances []struct {
		CreditorID   int64    `json:"creditor_id"`
		LiquidatorID int64    `json:"liquidator_id"`
		TotalAmount  int64    `json:"total_amount"`
		ContentIDs   []string `json:"content_ids"`
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/summary", token, nil, &balances); status != http.StatusOK {
		t.Fatalf("summary returned %d", status)
	}
	if len(balances) != 1 {
		t.Fatalf("got %d balances, want the netted pair: %+v", len(balances), balances)
	}
	b := balances[0]
	if b.CreditorID != alice || b.LiquidatorID != bob || b.TotalAmount != 300 {
		t.Errorf("balance = %+v, want alice over bob for 300", b)
	}

	var settled struct {
		Updated int `json:"updated"`
		Failed  int `json:"failed"`
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/summary/settle", token, map[string]any{
		"creditor_id":   b.CreditorID,
		"liquidator_id": b.LiquidatorID,
		"content_ids":   b.ContentIDs,
	}, &settled)
	if status != http.StatusOK {
		t.Fatalf("settle returned %d", status)
	}
	if settled.Updated != 2 || settled.Failed != 0 {
		t.Errorf("settle result = %+v, want 2 updates", settled)
	}

	if status := doJSON(t, http.MethodGet, ts.URL+"/api/summary", token, nil, &balances); status != http.StatusOK {
		t.Fatalf("summary returned %d", status)
	}
	if len(balances) != 0 {
		t.Errorf("summary after settle = %+v, want empty", balances)
	}
}
