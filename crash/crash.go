package crash

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Zombie9904/flutter/botdetector"
	"github.com/Zombie9904/flutter/errors"
	"github.com/Zombie9904/flutter/logging"
)

// DefaultBaseURL receives crash reports.
const DefaultBaseURL = "https://clients.flutter.dev/crash"

// DefaultMaxRetries is the default number of upload attempts.
const DefaultMaxRetries = 3

// DefaultRetryWait is the initial wait between attempts; it doubles each try.
const DefaultRetryWait = 1 * time.Second

// Report is one crash to upload.
type Report struct {
	Error      error
	StackTrace string

	// Command is the tool command that crashed, e.g. "build apk".
	Command string
}

// Reporter uploads crash reports. Reporting is best-effort: a failed upload
// is traced, never surfaced to the user.
type Reporter struct {
	client      *http.Client
	baseURL     string
	logger      logging.Logger
	detector    botdetector.BotDetector
	enabled     func() bool
	maxRetries  int
	retryWait   time.Duration
	toolVersion string
	osName      string
}

// Options configures NewReporter.
type Options struct {
	Client   *http.Client
	BaseURL  string
	Logger   logging.Logger
	Detector botdetector.BotDetector

	// Enabled consults user opt-out state (the crash-reporting setting).
	// nil means always enabled.
	Enabled func() bool

	MaxRetries int
	RetryWait  time.Duration

	// ToolVersion and OSName identify the environment in the report.
	ToolVersion string
	OSName      string
}

// NewReporter creates a crash reporter.
func NewReporter(opts Options) *Reporter {
	r := &Reporter{
		client:      opts.Client,
		baseURL:     opts.BaseURL,
		logger:      opts.Logger,
		detector:    opts.Detector,
		enabled:     opts.Enabled,
		maxRetries:  opts.MaxRetries,
		retryWait:   opts.RetryWait,
		toolVersion: opts.ToolVersion,
		osName:      opts.OSName,
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: 30 * time.Second}
	}
	if r.baseURL == "" {
		r.baseURL = DefaultBaseURL
	}
	if r.maxRetries <= 0 {
		r.maxRetries = DefaultMaxRetries
	}
	if r.retryWait <= 0 {
		r.retryWait = DefaultRetryWait
	}
	return r
}

// ShouldReport decides whether an error is worth a crash report. Deliberate
// tool exits and plain connectivity problems are the user's weather, not
// tool bugs.
func (r *Reporter) ShouldReport(err error) bool {
	if err == nil {
		return false
	}
	if errors.IsToolExit(err) || errors.IsNetworkError(err) {
		return false
	}
	if r.enabled != nil && !r.enabled() {
		return false
	}
	if r.detector != nil && r.detector.IsRunningOnBot() {
		return false
	}
	return true
}

// Send uploads the report and returns the report ID. Callers should check
// ShouldReport first; Send uploads unconditionally.
func (r *Reporter) Send(ctx context.Context, report Report) (string, error) {
	if report.Error == nil {
		return "", fmt.Errorf("crash report has no error")
	}
	reportID, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate report id: %w", err)
	}

	body, contentType, err := encodeReport(reportID, r.toolVersion, r.osName, report)
	if err != nil {
		return "", err
	}

	var lastErr error
	wait := r.retryWait
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		if attempt > 1 {
			r.logger.Tracef("crash upload attempt %d/%d", attempt, r.maxRetries)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}

		lastErr = r.post(ctx, contentType, body)
		if lastErr == nil {
			r.logger.Tracef("crash report %s uploaded", reportID)
			return reportID, nil
		}
		if !retryable(lastErr) {
			break
		}
	}
	return "", fmt.Errorf("upload crash report: %w", lastErr)
}

// post sends one upload attempt.
func (r *Reporter) post(ctx context.Context, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return &serverError{status: resp.StatusCode}
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("crash endpoint rejected report: %s", resp.Status)
	}
	return nil
}

// serverError marks a retryable upstream failure.
type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("crash endpoint returned %d", e.status)
}

// retryable reports whether an upload failure is worth another attempt:
// server-side errors and connectivity blips are, rejections are not.
func retryable(err error) bool {
	var se *serverError
	if stderrors.As(err, &se) {
		return true
	}
	return errors.IsNetworkError(err)
}

// encodeReport builds the multipart payload.
func encodeReport(reportID, toolVersion, osName string, report Report) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"product": "Flutter_Tools",
		"uuid":    reportID,
		"version": toolVersion,
		"osName":  osName,
		"command": report.Command,
		"error":   report.Error.Error(),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("DumpUpload", "stacktrace_file")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write([]byte(report.StackTrace)); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
