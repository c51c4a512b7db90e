package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrJudgeUnavailable covers timeouts, transport failures, non-2xx
// statuses and malformed payloads. It never reaches Validate's caller.
var ErrJudgeUnavailable = errors.New("judgment service unavailable")

type Window struct {
	Start time.Time
	End   time.Time
}

// Advice is an external, advisory judgment. It can raise severity or
// add suggestions; it cannot approve what the deterministic rules
// rejected.
type Advice struct {
	VerdictText       string
	SuggestedSeverity *Severity
	Suggestions       []string

	// Raw is the undecoded response body, kept for the audit trail.
	Raw json.RawMessage
}

// Judge is the capability the validator may consult. A fake judge
// stands in during tests.
type Judge interface {
	Judge(ctx context.Context, w Window, freeform string) (*Advice, error)
}

// HTTPJudge speaks the judgment service's JSON contract.
type HTTPJudge struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

type judgeRequest struct {
	ProposedStart   time.Time `json:"proposed_start"`
	ProposedEnd     time.Time `json:"proposed_end"`
	FreeformContext string    `json:"freeform_context"`
}

type judgeResponse struct {
	VerdictText       string   `json:"verdict_text"`
	SuggestedSeverity *string  `json:"suggested_severity,omitempty"`
	Suggestions       []string `json:"suggestions,omitempty"`
}

func (j *HTTPJudge) Judge(ctx context.Context, w Window, freeform string) (*Advice, error) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(judgeRequest{
		ProposedStart:   w.Start,
		ProposedEnd:     w.End,
		FreeformContext: freeform,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := j.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrJudgeUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	var jr judgeResponse
	if err := json.Unmarshal(raw, &jr); err != nil {
		return nil, fmt.Errorf("%w: malformed payload", ErrJudgeUnavailable)
	}
	if jr.VerdictText == "" {
		return nil, fmt.Errorf("%w: empty verdict", ErrJudgeUnavailable)
	}

	adv := &Advice{
		VerdictText: jr.VerdictText,
		Suggestions: jr.Suggestions,
		Raw:         json.RawMessage(raw),
	}
	if jr.SuggestedSeverity != nil {
		sev, ok := ParseSeverity(*jr.SuggestedSeverity)
		if !ok {
			return nil, fmt.Errorf("%w: bad severity %q", ErrJudgeUnavailable, *jr.SuggestedSeverity)
		}
		adv.SuggestedSeverity = &sev
	}
	return adv, nil
}
