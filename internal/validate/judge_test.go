package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() Window {
	start := time.Date(2026, 6, 2, 14, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.Add(time.Hour)}
}

func TestHTTPJudgeHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"verdict_text": "Busy stretch; keep it short.",
			"suggested_severity": "WARNING",
			"suggestions": ["Cap it at 30 minutes."]
		}`))
	}))
	defer srv.Close()

	j := &HTTPJudge{URL: srv.URL, Timeout: time.Second}
	adv, err := j.Judge(context.Background(), testWindow(), "three meetings already")
	require.NoError(t, err)

	assert.Equal(t, "Busy stretch; keep it short.", adv.VerdictText)
	require.NotNil(t, adv.SuggestedSeverity)
	assert.Equal(t, SeverityWarning, *adv.SuggestedSeverity)
	assert.Equal(t, []string{"Cap it at 30 minutes."}, adv.Suggestions)
	assert.NotEmpty(t, adv.Raw)
}

func TestHTTPJudgeNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	j := &HTTPJudge{URL: srv.URL, Timeout: time.Second}
	_, err := j.Judge(context.Background(), testWindow(), "")
	assert.ErrorIs(t, err, ErrJudgeUnavailable)
}

func TestHTTPJudgeMalformedBodyIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	j := &HTTPJudge{URL: srv.URL, Timeout: time.Second}
	_, err := j.Judge(context.Background(), testWindow(), "")
	assert.ErrorIs(t, err, ErrJudgeUnavailable)
}

func TestHTTPJudgeBadSeverityIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"verdict_text":"ok","suggested_severity":"CATASTROPHIC"}`))
	}))
	defer srv.Close()

	j := &HTTPJudge{URL: srv.URL, Timeout: time.Second}
	_, err := j.Judge(context.Background(), testWindow(), "")
	assert.ErrorIs(t, err, ErrJudgeUnavailable)
}

func TestHTTPJudgeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	j := &HTTPJudge{URL: srv.URL, Timeout: 20 * time.Millisecond}
	_, err := j.Judge(context.Background(), testWindow(), "")
	assert.ErrorIs(t, err, ErrJudgeUnavailable)
}
