package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	directory "google.golang.org/api/admin/directory/v1"
	reports "google.golang.org/api/admin/reports/v1"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/chat/v1"
	"google.golang.org/api/classroom/v1"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/meet/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
	"google.golang.org/api/reseller/v1"
	"google.golang.org/api/script/v1"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/slides/v1"
	"google.golang.org/api/tasks/v1"
)

// defaultBaseURLs are the REST roots used by Call for services whose
// newer methods are issued without the generated client.
var defaultBaseURLs = map[ServiceType]string{
	ServiceChat:  "https://chat.googleapis.com/",
	ServiceForms: "https://forms.googleapis.com/",
}

// Clients builds Google API services that share one authenticated HTTP client.
type Clients struct {
	httpClient *http.Client
	baseURL    string
	endpoints  map[ServiceType]string
	limiters   map[ServiceType]*RateLimiter
}

// ClientsOption configures Clients.
type ClientsOption func(*Clients)

// WithBaseURL sends every service's requests to url.
func WithBaseURL(url string) ClientsOption {
	return func(c *Clients) {
		c.baseURL = ensureSlash(url)
	}
}

// WithServiceEndpoint overrides the endpoint of one service.
func WithServiceEndpoint(svc ServiceType, url string) ClientsOption {
	return func(c *Clients) {
		c.endpoints[svc] = ensureSlash(url)
	}
}

// WithRateLimiter sets the pacing limiter used for svc.
func WithRateLimiter(svc ServiceType, limiter *RateLimiter) ClientsOption {
	return func(c *Clients) {
		c.limiters[svc] = limiter
	}
}

// NewClients creates a service factory around an authenticated client.
func NewClients(httpClient *http.Client, opts ...ClientsOption) *Clients {
	c := &Clients{
		httpClient: httpClient,
		endpoints:  make(map[ServiceType]string),
		limiters:   make(map[ServiceType]*RateLimiter),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient returns the authenticated client.
func (c *Clients) HTTPClient() *http.Client {
	return c.httpClient
}

// Limiter returns the pacing limiter for svc, creating a default one on first use.
func (c *Clients) Limiter(svc ServiceType) *RateLimiter {
	if l, ok := c.limiters[svc]; ok {
		return l
	}
	l := NewRateLimiter(svc)
	c.limiters[svc] = l
	return l
}

// Options returns the client options for svc.
func (c *Clients) Options(svc ServiceType) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(c.httpClient)}
	if ep := c.endpoint(svc); ep != "" {
		opts = append(opts, option.WithEndpoint(ep))
	}
	return opts
}

// BaseURL returns the REST root for svc.
func (c *Clients) BaseURL(svc ServiceType) string {
	if ep := c.endpoint(svc); ep != "" {
		return ep
	}
	return defaultBaseURLs[svc]
}

func (c *Clients) endpoint(svc ServiceType) string {
	if ep, ok := c.endpoints[svc]; ok {
		return ep
	}
	return c.baseURL
}

func ensureSlash(url string) string {
	if url == "" || strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}

// Drive creates a Google Drive API service.
func (c *Clients) Drive(ctx context.Context) (*drive.Service, error) {
	return drive.NewService(ctx, c.Options(ServiceDrive)...)
}

// Sheets creates a Google Sheets API service.
func (c *Clients) Sheets(ctx context.Context) (*sheets.Service, error) {
	return sheets.NewService(ctx, c.Options(ServiceSheets)...)
}

// Slides creates a Google Slides API service.
func (c *Clients) Slides(ctx context.Context) (*slides.Service, error) {
	return slides.NewService(ctx, c.Options(ServiceSlides)...)
}

// Chat creates a Google Chat API service.
func (c *Clients) Chat(ctx context.Context) (*chat.Service, error) {
	return chat.NewService(ctx, c.Options(ServiceChat)...)
}

// Forms creates a Google Forms API service.
func (c *Clients) Forms(ctx context.Context) (*forms.Service, error) {
	return forms.NewService(ctx, c.Options(ServiceForms)...)
}

// Directory creates an Admin SDK Directory API service.
func (c *Clients) Directory(ctx context.Context) (*directory.Service, error) {
	return directory.NewService(ctx, c.Options(ServiceDirectory)...)
}

// Reports creates an Admin SDK Reports API service.
func (c *Clients) Reports(ctx context.Context) (*reports.Service, error) {
	return reports.NewService(ctx, c.Options(ServiceReports)...)
}

// Reseller creates a Google Workspace Reseller API service.
func (c *Clients) Reseller(ctx context.Context) (*reseller.Service, error) {
	return reseller.NewService(ctx, c.Options(ServiceReseller)...)
}

// Calendar creates a Google Calendar API service.
func (c *Clients) Calendar(ctx context.Context) (*calendar.Service, error) {
	return calendar.NewService(ctx, c.Options(ServiceCalendar)...)
}

// Gmail creates a Gmail API service.
func (c *Clients) Gmail(ctx context.Context) (*gmail.Service, error) {
	return gmail.NewService(ctx, c.Options(ServiceGmail)...)
}

// People creates a People API service.
func (c *Clients) People(ctx context.Context) (*people.Service, error) {
	return people.NewService(ctx, c.Options(ServicePeople)...)
}

// Classroom creates a Google Classroom API service.
func (c *Clients) Classroom(ctx context.Context) (*classroom.Service, error) {
	return classroom.NewService(ctx, c.Options(ServiceClassroom)...)
}

// Tasks creates a Google Tasks API service.
func (c *Clients) Tasks(ctx context.Context) (*tasks.Service, error) {
	return tasks.NewService(ctx, c.Options(ServiceTasks)...)
}

// Docs creates a Google Docs API service.
func (c *Clients) Docs(ctx context.Context) (*docs.Service, error) {
	return docs.NewService(ctx, c.Options(ServiceDocs)...)
}

// Script creates an Apps Script API service.
func (c *Clients) Script(ctx context.Context) (*script.Service, error) {
	return script.NewService(ctx, c.Options(ServiceScript)...)
}

// Meet creates a Google Meet API service.
func (c *Clients) Meet(ctx context.Context) (*meet.Service, error) {
	return meet.NewService(ctx, c.Options(ServiceMeet)...)
}

// Call issues a JSON REST request against svc's base URL. path is relative
// to the base URL ("v1/forms/abc:setPublishSettings"). A nil body sends no
// payload and a nil out discards the response.
func (c *Clients) Call(ctx context.Context, svc ServiceType, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL(svc)+strings.TrimPrefix(path, "/"), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return WrapError(err)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
