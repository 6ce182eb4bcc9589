package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/canvass/pkg/domain"
)

// printSubmitter writes the finished submission as pretty JSON. It is
// the default sink when no endpoint is configured.
type printSubmitter struct {
	w io.Writer
}

func newPrintSubmitter(w io.Writer) *printSubmitter {
	return &printSubmitter{w: w}
}

func (p *printSubmitter) Submit(ctx context.Context, sub *domain.Submission) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(sub)
}

// HTTPSubmitter posts the submission to a collection endpoint.
type HTTPSubmitter struct {
	url    string
	client *http.Client
}

// NewHTTPSubmitter creates a submitter that POSTs submissions as JSON.
func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *HTTPSubmitter) Submit(ctx context.Context, sub *domain.Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submission endpoint returned %s", resp.Status)
	}
	return nil
}
