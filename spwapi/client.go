// Package spwapi is the typed client for the remote LanguageBridge backend
// (the `spwapi` HTTP namespace). Every request is signed with the shared
// application key; authenticated endpoints additionally carry the session
// token issued at login.
package spwapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/catiga/languagebridge/core"
)

type Client struct {
	baseURL string
	appID   string
	appKey  string
	version string
	http    *http.Client

	// now is swapped out in tests to pin signature timestamps
	now func() time.Time
}

func NewClient(conf core.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		appID:   conf.AppID,
		appKey:  conf.AppKey,
		version: conf.Version,
		http:    &http.Client{Timeout: conf.Timeout},
		now:     time.Now,
	}
}

// response is the envelope every backend endpoint wraps its payload in.
type response struct {
	Code      int             `json:"code"`
	Msg       string          `json:"msg"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// sign computes the request signature headers. The signature is a SHA-256 over
// the app id, request id, timestamp, protocol version and the shared key, hex
// encoded; the request id is the timestamp plus a random suffix.
func (c *Client) sign(h http.Header) {
	ts := c.now().Unix()
	requestID := fmt.Sprintf("%d-%s", ts, strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	input := fmt.Sprintf("%s%s%d%s%s", c.appID, requestID, ts, c.version, c.appKey)
	sig := fmt.Sprintf("%x", sha256.Sum256([]byte(input)))

	h.Set("APPID", c.appID)
	h.Set("TS", strconv.FormatInt(ts, 10))
	h.Set("VER", c.version)
	h.Set("SIG", sig)
	h.Set("REQUESTID", requestID)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}, token string) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request body")
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.sign(req.Header)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode}
	}

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrapf(err, "decoding %s response", path)
	}
	if env.Code != CodeSuccess {
		return &Error{Code: env.Code, Msg: env.Msg}
	}
	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "decoding %s data", path)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}, token string) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out, token)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}, token string) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, token)
}
