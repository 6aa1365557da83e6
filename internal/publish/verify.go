package publish

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const verifyTimeout = 30 * time.Second

// VerifyResult records the outcome of checking one published URL.
type VerifyResult struct {
	Name       string
	URL        string
	StatusCode int
	Err        error
}

// OK reports whether the published file resolved correctly.
func (r VerifyResult) OK() bool {
	return r.Err == nil && r.StatusCode == http.StatusOK
}

// VerifyURLs fetches every published filename under baseURL and checks that
// it still resolves (HTTP 200) and, for calendars, that the payload is an
// iCalendar document. This is the subscriber's view: a failing URL means
// previously distributed subscriptions are broken.
func VerifyURLs(ctx context.Context, client *http.Client, baseURL string, names []string, log *zap.Logger) ([]VerifyResult, error) {
	if client == nil {
		client = &http.Client{Timeout: verifyTimeout}
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	results := make([]VerifyResult, 0, len(names))
	failures := 0

	for _, name := range names {
		result := verifyOne(ctx, client, baseURL+"/"+name, name)
		results = append(results, result)

		if result.OK() {
			log.Info("verified", zap.String("url", result.URL))
		} else {
			failures++
			log.Error("verification failed",
				zap.String("url", result.URL),
				zap.Int("status", result.StatusCode),
				zap.Error(result.Err))
		}
	}

	if failures > 0 {
		return results, fmt.Errorf("%d of %d published URLs failed verification", failures, len(names))
	}
	return results, nil
}

func verifyOne(ctx context.Context, client *http.Client, url, name string) VerifyResult {
	result := VerifyResult{Name: name, URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Err = err
		return result
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		return result
	}

	if strings.HasSuffix(name, ".ics") {
		head := make([]byte, len("BEGIN:VCALENDAR"))
		if _, err := io.ReadFull(resp.Body, head); err != nil {
			result.Err = fmt.Errorf("failed to read calendar body: %w", err)
			return result
		}
		if string(head) != "BEGIN:VCALENDAR" {
			result.Err = fmt.Errorf("response is not an iCalendar document")
		}
	}

	return result
}
