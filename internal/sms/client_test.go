package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyDoer records every outbound request and answers with a canned response.
type spyDoer struct {
	mu     sync.Mutex
	calls  []*http.Request
	bodies [][]byte

	status int
	body   string
	err    error
}

func (s *spyDoer) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	s.calls = append(s.calls, req)
	s.bodies = append(s.bodies, body)

	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     make(http.Header),
	}, nil
}

func (s *spyDoer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newTestClient(t *testing.T, spy *spyDoer, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(spy)}, opts...)
	c, err := NewClient(Config{AppID: "A", AppSecret: "S", APIKey: "K", SenderID: "SND"}, opts...)
	require.NoError(t, err)
	return c
}

func numbers(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("+2340000%04d", i)
	}
	return out
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "appId")
	assert.Contains(t, err.Error(), "appSecret")
	assert.Contains(t, err.Error(), "apiKey")

	_, err = NewClient(Config{AppID: "A", AppSecret: "S"})
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.NotContains(t, err.Error(), "appId")
	assert.Contains(t, err.Error(), "apiKey")
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{AppID: "A", AppSecret: "S", APIKey: "K"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.Config().BaseURL)
	assert.Equal(t, "", c.Config().SenderID)
}

func TestTo_JoinsNumbersInOrder(t *testing.T) {
	for _, n := range []int{1, 2, 50, MaxRecipients} {
		spy := &spyDoer{}
		c := newTestClient(t, spy)

		nums := numbers(n)
		req, err := c.To(nums...)
		require.NoError(t, err)

		_, err = req.Send(context.Background(), "hello")
		require.NoError(t, err)
		require.Equal(t, 1, spy.Calls())

		var body map[string]string
		require.NoError(t, json.Unmarshal(spy.bodies[0], &body))
		assert.Equal(t, strings.Join(nums, ","), body["numbers"], "n=%d", n)
	}
}

func TestTo_TooManyLeavesRequestUnchanged(t *testing.T) {
	spy := &spyDoer{}
	c := newTestClient(t, spy)

	req, err := c.To("111", "222")
	require.NoError(t, err)

	same, err := req.To(numbers(MaxRecipients + 1)...)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRecipients)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, []string{"111", "222"}, req.Numbers())
	assert.Equal(t, []string{"111", "222"}, same.Numbers())

	_, err = req.Send(context.Background(), "hi")
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(spy.bodies[0], &body))
	assert.Equal(t, "111,222", body["numbers"])
}

func TestTo_ReplacesRecipients(t *testing.T) {
	c := newTestClient(t, &spyDoer{})

	first, err := c.To("111", "222")
	require.NoError(t, err)
	second, err := first.To("333")
	require.NoError(t, err)

	assert.Equal(t, []string{"111", "222"}, first.Numbers())
	assert.Equal(t, []string{"333"}, second.Numbers())
}

func TestTo_CopiesInput(t *testing.T) {
	c := newTestClient(t, &spyDoer{})

	in := []string{"111", "222"}
	req, err := c.To(in...)
	require.NoError(t, err)
	in[0] = "999"

	assert.Equal(t, []string{"111", "222"}, req.Numbers())
}

func TestSend_NoRecipients(t *testing.T) {
	spy := &spyDoer{}
	c := newTestClient(t, spy)

	_, err := c.Request().Send(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.ErrorIs(t, err, ErrUsage)

	_, err = c.Send(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrNoRecipients)

	assert.Zero(t, spy.Calls())
}

func TestSend_UnboundRequest(t *testing.T) {
	req, err := Request{}.To("111")
	require.NoError(t, err)

	_, err = req.Send(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnboundRequest)
}

func TestSend_SignsWithClock(t *testing.T) {
	spy := &spyDoer{}
	c := newTestClient(t, spy, WithClock(fixedClock(1500)))

	_, err := c.Send(context.Background(), []string{"111"}, "hi")
	require.NoError(t, err)

	req := spy.calls[0]
	assert.Equal(t, "2", req.Header.Get("Timestamp"))
	assert.Equal(t, Sign("K", "S", 2), req.Header.Get("Sign"))
}

func TestSend_EndToEnd(t *testing.T) {
	spy := &spyDoer{body: `{"status":"0","reason":"success","success":"2","fail":"0","array":[{"msgId":"m1","number":"111","orderId":null},{"msgId":"m2","number":"222"}]}`}
	c := newTestClient(t, spy)

	req, err := c.To("111", "222")
	require.NoError(t, err)
	res, err := req.Send(context.Background(), "hi")
	require.NoError(t, err)

	require.Equal(t, 1, spy.Calls())
	got := spy.calls[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, DefaultBaseURL, got.URL.String())
	assert.Equal(t, "K", got.Header.Get("Api-Key"))
	assert.Equal(t, "application/json;charset=UTF-8", got.Header.Get("Content-Type"))
	assert.Regexp(t, `^[0-9a-f]{32}$`, got.Header.Get("Sign"))
	assert.Regexp(t, `^[0-9]+$`, got.Header.Get("Timestamp"))

	assert.JSONEq(t, `{"senderId":"SND","appId":"A","numbers":"111,222","content":"hi"}`, string(spy.bodies[0]))
	assert.True(t, strings.HasPrefix(string(spy.bodies[0]), `{"senderId":"SND","appId":"A","numbers":`))
	assert.NotContains(t, string(spy.bodies[0]), `"S"`)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	decoded, err := res.Decode()
	require.NoError(t, err)
	assert.True(t, decoded.OK())
	require.Len(t, decoded.Array, 2)
	assert.Equal(t, "m1", decoded.Array[0].MsgID)
	assert.Equal(t, "", decoded.Array[0].OrderID)
}

func TestSend_RequestCanBeResent(t *testing.T) {
	spy := &spyDoer{}
	c := newTestClient(t, spy)

	req, err := c.To("111")
	require.NoError(t, err)
	_, err = req.Send(context.Background(), "one")
	require.NoError(t, err)
	_, err = req.Send(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, 2, spy.Calls())
}

func TestSend_NonSuccessStatus(t *testing.T) {
	spy := &spyDoer{status: http.StatusUnauthorized, body: `{"status":"-1","reason":"sign error"}`}
	c := newTestClient(t, spy)

	_, err := c.Send(context.Background(), []string{"111"}, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)
	assert.Contains(t, te.Body, "sign error")
	assert.Equal(t, 1, spy.Calls())
}

func TestSend_NetworkFailure(t *testing.T) {
	boom := errors.New("connection refused")
	spy := &spyDoer{err: boom}
	c := newTestClient(t, spy)

	_, err := c.Send(context.Background(), []string{"111"}, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, spy.Calls(), "no retry")
}

func TestSend_AgainstHTTPServer(t *testing.T) {
	var (
		gotHeader http.Header
		gotBody   payload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"0","reason":"success"}`))
	}))
	defer srv.Close()

	c, err := NewClient(
		Config{AppID: "A", AppSecret: "S", APIKey: "K", BaseURL: srv.URL},
		WithClock(fixedClock(1_700_000_000_250)),
	)
	require.NoError(t, err)

	res, err := c.Send(context.Background(), []string{"111", "222"}, "hi")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, "1700000001", gotHeader.Get("Timestamp"))
	assert.Equal(t, Sign("K", "S", 1700000001), gotHeader.Get("Sign"))
	assert.Equal(t, payload{SenderID: "", AppID: "A", Numbers: "111,222", Content: "hi"}, gotBody)
}

func TestSend_ContextCanceled(t *testing.T) {
	// The handler hangs until the test is over so the client deadline fires first.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(Config{AppID: "A", AppSecret: "S", APIKey: "K", BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Send(ctx, []string{"111"}, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
