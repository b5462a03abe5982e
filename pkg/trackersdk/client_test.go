package trackersdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginCarriesToken(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter22" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorCodeInvalidCredentials})
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "tok-" + req.Username, TokenType: "Bearer"})
	})
	mux.HandleFunc("GET /v1/summary", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-alice", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, SummaryResponse{CurrentMonthHours: 12.5})
	})

	client := newStubServer(t, mux)
	ctx := context.Background()

	_, err := client.Login(ctx, "alice", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)

	sess, err := client.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "tok-alice", sess.AccessToken())

	sum, err := sess.Summary(ctx)
	require.NoError(t, err)
	require.InDelta(t, 12.5, sum.CurrentMonthHours, 1e-9)
}

func TestErrorBodyFallback(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})

	_, err := newStubServer(t, mux).GetLiveness(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Contains(t, apiErr.Error(), "Bad Gateway")
}

func TestSessionQueryParameters(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/assignments/active", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-03", r.URL.Query().Get("date"))
		assert.False(t, r.URL.Query().Has("user_id"))
		writeJSON(w, http.StatusOK, ListAssignmentsResponse{
			Assignments: []Assignment{{ID: "a1", Start: "2024-01-01", End: "2024-01-05"}},
		})
	})
	mux.HandleFunc("GET /v1/timeline", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("active_only"))
		writeJSON(w, http.StatusOK, TimelineResponse{})
	})
	mux.HandleFunc("DELETE /v1/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "e1" {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorCodeNotFound, ErrorDescription: "entry not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	sess := newStubServer(t, mux).NewSession("tok")
	ctx := context.Background()

	active, err := sess.ActiveAssignments(ctx, "", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "a1", active[0].ID)

	_, err = sess.Timeline(ctx, false)
	require.NoError(t, err)

	require.NoError(t, sess.DeleteEntry(ctx, "e1"))

	err = sess.DeleteEntry(ctx, "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "not_found: entry not found", apiErr.Error())
}

func TestExportReportFilename(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/reports/export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, XLSXContentType, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", XLSXContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="time_report_20240402.xlsx"`)
		_, _ = w.Write([]byte("PK"))
	})

	export, err := newStubServer(t, mux).NewSession("tok").ExportReport(context.Background(), ReportRequest{
		Start: "2024-04-01",
		End:   "2024-04-02",
	})
	require.NoError(t, err)
	require.Equal(t, "time_report_20240402.xlsx", export.Filename)
	require.Equal(t, []byte("PK"), export.Data)
}
