// Package ai is the gateway to the AuChan agentic services: AI document
// extraction and AI report generation. Both are asynchronous: a start call
// returns an opaque job id that is then polled through internal/jobs.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/jobs"
)

// DefaultBaseURL is the hosted AI service.
const DefaultBaseURL = "https://petanihandal-auchanagenticservices.hf.space/api"

// Client talks to the AI service. The service authenticates through the
// contextual ids it receives, not through the backend's bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an AI service client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Extraction uploads can be slow to accept on cold starts.
			Timeout: 2 * time.Minute,
		},
	}
}

type jobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// ExtractDocument uploads a document for AI extraction. The resulting
// transaction is written to the backend by the service itself; the client
// only learns the outcome through polling.
func (c *Client) ExtractDocument(ctx context.Context, file io.Reader, fileName, userID, orgID, projectID string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	q := url.Values{}
	q.Set("userId", userID)
	q.Set("orgId", orgID)
	q.Set("projectId", projectID)

	endpoint := c.baseURL + "/extract/docx?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	job, err := c.doJob(req)
	if err != nil {
		return "", fmt.Errorf("extraction upload failed: %w", err)
	}
	return job.JobID, nil
}

// ExtractStatus polls the state of an extraction job.
func (c *Client) ExtractStatus(ctx context.Context, jobID string) (jobs.State, error) {
	return c.jobStatus(ctx, "/extract/status/"+jobID)
}

// BuildReport starts an AI report job for the given period. A 404 means no
// transactions exist for the period and is surfaced as ErrNoTransactions so
// callers can preserve any previously tracked job.
func (c *Client) BuildReport(ctx context.Context, orgID string, month, year int) (string, error) {
	body := map[string]any{
		"org_id": orgID,
		"month":  month,
		"year":   year,
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/build-report", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	job, err := c.doJob(req)
	if err != nil {
		return "", fmt.Errorf("report request failed for %d/%d: %w", month, year, err)
	}
	return job.JobID, nil
}

// ReportStatus polls the state of a report job.
func (c *Client) ReportStatus(ctx context.Context, jobID string) (jobs.State, error) {
	return c.jobStatus(ctx, "/build-report/status/"+jobID)
}

// DownloadReport streams the finished report PDF into w and returns the
// number of bytes written.
func (c *Client) DownloadReport(ctx context.Context, jobID string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/extract/download/"+jobID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s", common.ErrJobNotFound, jobID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("AI service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return written, fmt.Errorf("failed to write report: %w", err)
	}
	return written, nil
}

// ReportSize asks how large the finished PDF is so downloads can show
// progress. Zero is returned when the service does not advertise a length.
func (c *Client) ReportSize(ctx context.Context, jobID string) int64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/extract/download/"+jobID, nil)
	if err != nil {
		return 0
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0
	}
	size, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil {
		return 0
	}
	return size
}

// doJob executes a start-job request and decodes the {job_id} response. The
// service is a FastAPI app: errors arrive either as HTTP statuses or as a
// detail field in an otherwise OK body.
func (c *Client) doJob(req *http.Request) (*jobResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		common.LogError(err, "AI service request failed", common.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
		})
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	common.LogDebug("AI service request completed", common.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrNoTransactions
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("AI service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var job jobResponse
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if job.Detail != "" {
		return nil, fmt.Errorf("%w: %s", common.ErrJobFailed, job.Detail)
	}
	if job.JobID == "" {
		return nil, fmt.Errorf("no job id in response")
	}
	return &job, nil
}

// jobStatus queries a status endpoint and maps the answer onto the poller's
// state machine. A missing job is distinguished from a generic failure.
func (c *Client) jobStatus(ctx context.Context, path string) (jobs.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return jobs.StateIdle, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return jobs.StateIdle, fmt.Errorf("status request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return jobs.StateIdle, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return jobs.StateFailed, common.ErrJobNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return jobs.StateIdle, fmt.Errorf("AI service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return jobs.StateIdle, fmt.Errorf("failed to parse status: %w", err)
	}
	return jobs.ParseState(status.Status), nil
}
