package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTelegram(t *testing.T, apiBase string) *Telegram {
	t.Helper()
	tg := NewTelegram("test-token", "12345")
	tg.apiBase = apiBase
	tg.backoff = func(int) {}
	return tg
}

func TestSendText(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := testTelegram(t, srv.URL).SendText("harga emas scrape failed")
	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotPayload["chat_id"])
	assert.Equal(t, "harga emas scrape failed", gotPayload["text"])
}

func TestSendTextRetriesUntilSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, testTelegram(t, srv.URL).SendText("retry me"))
	assert.Equal(t, 3, calls)
}

func TestSendTextGivesUpAfterThreeAttempts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := testTelegram(t, srv.URL).SendText("never delivered")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "status=502")
}

func TestSendTextRequiresConfig(t *testing.T) {
	tg := NewTelegram("", "")
	assert.Error(t, tg.SendText("no config"))
}
