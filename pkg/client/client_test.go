package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/Sternrassler/iracing-data-client/internal/testutil"
	"github.com/Sternrassler/iracing-data-client/pkg/auth"
)

func newTestClient(t *testing.T, mock *testutil.MockDataAPI) *Client {
	t.Helper()

	session, err := auth.NewSession(auth.Config{
		Email:          "member@example.com",
		Password:       "SuperSecret",
		AuthURL:        mock.AuthURL(),
		MaxAttempts:    3,
		StabilizeDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	c, err := New(Config{
		Session:     session,
		BaseURL:     mock.URL(),
		MaxAttempts: 3,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestGet_SuccessWithImplicitLogin(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/data/car/get", testutil.NewJSONResponse(`[{"car_id": 1}]`))

	c := newTestClient(t, mock)

	resp, err := c.Get(context.Background(), c.BaseURL()+"/data/car/get", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `[{"car_id": 1}]` {
		t.Errorf("body = %s", body)
	}
	if mock.GetLoginCount() != 1 {
		t.Errorf("login count = %d, want 1", mock.GetLoginCount())
	}
}

func TestGet_QueryParameters(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()

	var gotQuery url.Values
	mock.SetHandler("/data/league/get", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, mock)

	query := url.Values{}
	query.Set("league_id", "123")
	query.Set("include_licenses", "false")

	resp, err := c.Get(context.Background(), c.BaseURL()+"/data/league/get", query)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if gotQuery.Get("league_id") != "123" {
		t.Errorf("league_id = %q, want 123", gotQuery.Get("league_id"))
	}
	if gotQuery.Get("include_licenses") != "false" {
		t.Errorf("include_licenses = %q, want false", gotQuery.Get("include_licenses"))
	}
}

func TestGet_RateLimitedTwiceThenSuccess(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponseSequence("/data/member/info", []testutil.MockResponse{
		testutil.NewRateLimitedResponse(0),
		testutil.NewRateLimitedResponse(0),
		testutil.NewJSONResponse(`{"cust_id": 42}`),
	})

	c := newTestClient(t, mock)

	start := time.Now()
	resp, err := c.Get(context.Background(), c.BaseURL()+"/data/member/info", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	// Two backoff sleeps, each clamped to the 1s floor.
	if elapsed := time.Since(start); elapsed < 2*time.Second {
		t.Errorf("expected two backoff sleeps, elapsed %v", elapsed)
	}
	if n := mock.GetPathCount("/data/member/info"); n != 3 {
		t.Errorf("request count = %d, want 3", n)
	}
}

func TestGet_UnauthorizedTriggersSingleRelogin(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponseSequence("/data/member/info", []testutil.MockResponse{
		testutil.NewStatusResponse(http.StatusUnauthorized),
		testutil.NewJSONResponse(`{"cust_id": 42}`),
	})

	c := newTestClient(t, mock)

	resp, err := c.Get(context.Background(), c.BaseURL()+"/data/member/info", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	// Initial login plus the 401-triggered re-login.
	if n := mock.GetLoginCount(); n != 2 {
		t.Errorf("login count = %d, want 2", n)
	}
	if n := mock.GetPathCount("/data/member/info"); n != 2 {
		t.Errorf("request count = %d, want 2", n)
	}
}

func TestGet_RepeatedUnauthorizedFails(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/data/member/info", testutil.NewStatusResponse(http.StatusUnauthorized))

	c := newTestClient(t, mock)

	_, err := c.Get(context.Background(), c.BaseURL()+"/data/member/info", nil)
	if err == nil {
		t.Fatal("expected error for repeated 401")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", reqErr.StatusCode)
	}
	// One re-login, then the second 401 is terminal.
	if n := mock.GetLoginCount(); n != 2 {
		t.Errorf("login count = %d, want 2", n)
	}
}

func TestGet_ForbiddenFailsImmediately(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/data/results/get", testutil.NewStatusResponse(http.StatusForbidden))

	c := newTestClient(t, mock)

	_, err := c.Get(context.Background(), c.BaseURL()+"/data/results/get", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", reqErr.StatusCode)
	}
	// No retries for a categorical denial.
	if n := mock.GetPathCount("/data/results/get"); n != 1 {
		t.Errorf("request count = %d, want 1", n)
	}
}

func TestGet_UnexpectedStatusFailsImmediately(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/data/unknown", testutil.NewStatusResponse(http.StatusNotFound))

	c := newTestClient(t, mock)

	_, err := c.Get(context.Background(), c.BaseURL()+"/data/unknown", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", reqErr.StatusCode)
	}
	if n := mock.GetPathCount("/data/unknown"); n != 1 {
		t.Errorf("request count = %d, want 1", n)
	}
}

func TestGet_RetryExhaustion(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/data/member/info", testutil.NewRateLimitedResponse(0))

	c := newTestClient(t, mock)

	_, err := c.Get(context.Background(), c.BaseURL()+"/data/member/info", nil)
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("expected ErrRetryExhausted, got %v", err)
	}
	if n := mock.GetPathCount("/data/member/info"); n != 3 {
		t.Errorf("request count = %d, want 3 (the full budget)", n)
	}
}

func TestGet_ContextCancelledDuringBackoff(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/data/member/info", testutil.NewRateLimitedResponse(30*time.Second))

	c := newTestClient(t, mock)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Get(ctx, c.BaseURL()+"/data/member/info", nil)
	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("expected ErrContextCancelled, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation did not interrupt the backoff sleep")
	}
}

func TestGetUnauthenticated_SkipsLogin(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/chunks/a.json", testutil.NewJSONResponse(`[1,2]`))

	c := newTestClient(t, mock)

	resp, err := c.GetUnauthenticated(context.Background(), c.BaseURL()+"/chunks/a.json", nil)
	if err != nil {
		t.Fatalf("GetUnauthenticated failed: %v", err)
	}
	resp.Body.Close()

	if n := mock.GetLoginCount(); n != 0 {
		t.Errorf("login count = %d, want 0", n)
	}
}

func TestNew_RequiresSession(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing session")
	}
}
