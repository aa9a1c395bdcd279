package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrEmbedTimeout    = errors.New("embedded service did not respond in time")
	ErrEmbedURLInvalid = errors.New("embed url must be an absolute http(s) url")
)

// DefaultEmbedTimeout bounds a single probe.
const DefaultEmbedTimeout = 10 * time.Second

// EmbedStatus reports whether an external service can be shown in an iframe.
type EmbedStatus struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Reachable  bool   `json:"reachable"`
	Embeddable bool   `json:"embeddable"`
	Reason     string `json:"reason,omitempty"`
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// EmbedService probes embedded service pages before the portal frames them.
type EmbedService struct {
	httpClient httpDoer
	timeout    time.Duration
	siteOrigin string
}

// NewEmbedService builds an EmbedService. siteOrigin is the portal's own
// origin, used to honour SAMEORIGIN and frame-ancestors lists.
func NewEmbedService(timeout time.Duration, siteOrigin string) *EmbedService {
	if timeout <= 0 {
		timeout = DefaultEmbedTimeout
	}
	return &EmbedService{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		siteOrigin: originOf(siteOrigin),
	}
}

// SetHTTPClient replaces the client used for probes, mainly for tests.
func (s *EmbedService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.httpClient = &http.Client{Timeout: s.timeout}
		return
	}
	s.httpClient = client
}

// Check fetches rawURL once and inspects its framing headers. A probe that
// exceeds the timeout returns ErrEmbedTimeout. Non-2xx answers are reported
// as unreachable without an error.
func (s *EmbedService) Check(ctx context.Context, rawURL string) (EmbedStatus, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return EmbedStatus{}, ErrEmbedURLInvalid
	}
	status := EmbedStatus{URL: target.String()}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, status.URL, nil)
	if err != nil {
		return EmbedStatus{}, fmt.Errorf("build embed probe: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return status, ErrEmbedTimeout
		}
		var timeout interface{ Timeout() bool }
		if errors.As(err, &timeout) && timeout.Timeout() {
			return status, ErrEmbedTimeout
		}
		status.Reason = "unreachable"
		return status, nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	status.StatusCode = resp.StatusCode
	status.Reachable = resp.StatusCode >= 200 && resp.StatusCode < 400
	if !status.Reachable {
		status.Reason = fmt.Sprintf("status %d", resp.StatusCode)
		return status, nil
	}

	status.Embeddable, status.Reason = s.framingAllowed(target, resp.Header)
	return status, nil
}

func (s *EmbedService) framingAllowed(target *url.URL, header http.Header) (bool, string) {
	if ancestors, ok := frameAncestors(header.Values("Content-Security-Policy")); ok {
		if s.ancestorsAllow(target, ancestors) {
			return true, ""
		}
		return false, "content-security-policy frame-ancestors"
	}

	switch strings.ToUpper(strings.TrimSpace(header.Get("X-Frame-Options"))) {
	case "":
		return true, ""
	case "DENY":
		return false, "x-frame-options deny"
	case "SAMEORIGIN":
		if s.siteOrigin != "" && s.siteOrigin == originOf(target.String()) {
			return true, ""
		}
		return false, "x-frame-options sameorigin"
	default:
		return false, "x-frame-options"
	}
}

func (s *EmbedService) ancestorsAllow(target *url.URL, sources []string) bool {
	for _, source := range sources {
		switch strings.ToLower(source) {
		case "'none'":
			return false
		case "*":
			return true
		case "'self'":
			if s.siteOrigin != "" && s.siteOrigin == originOf(target.String()) {
				return true
			}
		default:
			if s.siteOrigin != "" && matchSource(source, s.siteOrigin) {
				return true
			}
		}
	}
	return false
}

// frameAncestors returns the source list of the frame-ancestors directive.
func frameAncestors(policies []string) ([]string, bool) {
	for _, policy := range policies {
		for _, directive := range strings.Split(policy, ";") {
			fields := strings.Fields(directive)
			if len(fields) == 0 || !strings.EqualFold(fields[0], "frame-ancestors") {
				continue
			}
			return fields[1:], true
		}
	}
	return nil, false
}

func matchSource(source, origin string) bool {
	source = strings.TrimRight(strings.ToLower(source), "/")
	if source == origin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	pattern := source
	if idx := strings.Index(pattern, "://"); idx >= 0 {
		if pattern[:idx] != u.Scheme {
			return false
		}
		pattern = pattern[idx+3:]
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return pattern == u.Host || pattern == host
}

func originOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
