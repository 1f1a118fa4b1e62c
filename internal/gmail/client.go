package gmail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"

	"github.com/syedahmad/aireply/internal/logging"
)

const (
	defaultBaseURL = "https://gmail.googleapis.com/gmail/v1/users/me"

	// inboxPageSize is how many threads one inbox fetch covers.
	inboxPageSize = 20

	// inboxFetchConcurrency bounds the per-thread fan-out during inbox
	// assembly. Threads have no ordering dependency between each other.
	inboxFetchConcurrency = 5
)

// Client talks to the mail provider's REST API on behalf of one
// credential. A client built with an empty token is valid but
// unauthenticated: every operation becomes a silent no-op, which models
// the signed-out state without surfacing errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient replaces the token-authenticated HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a gateway around an opaque bearer token. The token is
// supplied by the external sign-in collaborator; the client never
// performs the sign-in handshake itself.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		if token == "" {
			c.httpClient = http.DefaultClient
		} else {
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
			c.httpClient = oauth2.NewClient(context.Background(), src)
		}
	}
	c.logger = logging.WithService(c.logger, "gmail")
	return c
}

// Authenticated reports whether the client carries a credential.
func (c *Client) Authenticated() bool { return c.token != "" }

// ListInboxThreads lists up to inboxPageSize threads labeled INBOX, in
// provider order. Without a credential it returns an empty result and no
// error. Listing failures propagate: the caller cannot degrade past a
// broken listing.
func (c *Client) ListInboxThreads(ctx context.Context) ([]ThreadSummary, error) {
	if !c.Authenticated() {
		return nil, nil
	}
	u := fmt.Sprintf("%s/threads?maxResults=%d&labelIds=INBOX", c.baseURL, inboxPageSize)
	var list ThreadList
	if err := c.getJSON(ctx, u, "thread list", &list); err != nil {
		return nil, err
	}
	return list.Threads, nil
}

// FetchThread fetches one thread in full format. Failures are absorbed:
// a thread that cannot be fetched or decoded is simply empty, so inbox
// assembly drops it instead of failing outright.
func (c *Client) FetchThread(ctx context.Context, threadID string) ([]*RawMessage, error) {
	if !c.Authenticated() || threadID == "" {
		return nil, nil
	}
	u := fmt.Sprintf("%s/threads/%s?format=full", c.baseURL, url.PathEscape(threadID))
	var thread Thread
	if err := c.getJSON(ctx, u, "thread", &thread); err != nil {
		c.logger.DebugContext(ctx, "thread fetch dropped",
			logging.Operation("fetch_thread"),
			logging.Status(logging.StatusError),
			slog.String("thread", threadID),
			logging.Err(err))
		return nil, nil
	}
	return thread.Messages, nil
}

// SendRaw posts a base64url-encoded MIME message. The provider-assigned
// identifiers in the response are ignored; a 2xx status is success.
func (c *Client) SendRaw(ctx context.Context, raw, threadID string) error {
	if !c.Authenticated() {
		return nil
	}
	body, err := json.Marshal(SendRequest{Raw: raw, ThreadID: threadID})
	if err != nil {
		return fmt.Errorf("encoding send request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer res.Body.Close()
	if err := checkStatus(res); err != nil {
		return err
	}
	return nil
}

// FetchInbox assembles the inbox: list thread summaries, fetch each
// thread concurrently, and keep the latest parseable message per thread
// as its row. Per-thread failures and threads with no parseable message
// are dropped silently. The final order is the provider's listing order,
// not a date re-sort.
func (c *Client) FetchInbox(ctx context.Context) ([]Message, error) {
	if !c.Authenticated() {
		return nil, nil
	}
	threads, err := c.ListInboxThreads(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*Message, len(threads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inboxFetchConcurrency)
	for i, t := range threads {
		g.Go(func() error {
			raws, err := c.FetchThread(gctx, t.ID)
			if err != nil || len(raws) == 0 {
				return nil
			}
			if m, ok := latestMessage(raws); ok {
				rows[i] = &m
			}
			return nil
		})
	}
	// Per-thread goroutines never return errors; Wait only joins them.
	_ = g.Wait()

	inbox := make([]Message, 0, len(threads))
	for _, row := range rows {
		if row != nil {
			inbox = append(inbox, *row)
		}
	}
	c.logger.DebugContext(ctx, "inbox assembled",
		logging.Operation("fetch_inbox"),
		slog.Int("threads", len(threads)),
		slog.Int("rows", len(inbox)))
	return inbox, nil
}

// latestMessage sorts a thread's messages ascending by internal date
// (stable, so wire order breaks ties and missing dates sort first) and
// returns the most recent one that parses.
func latestMessage(raws []*RawMessage) (Message, bool) {
	sorted := make([]*RawMessage, len(raws))
	copy(sorted, raws)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InternalDate < sorted[j].InternalDate
	})
	for i := len(sorted) - 1; i >= 0; i-- {
		if m, ok := ParseMessage(sorted[i]); ok {
			return m, true
		}
	}
	return Message{}, false
}

// ReplySubject prefixes a subject with "Re: " unless it already carries
// the prefix in any casing.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// BuildReplyMIME assembles the RFC822 plain-text reply. In-Reply-To and
// References both carry the original Message-ID so the reply threads
// correctly on the receiving side.
func BuildReplyMIME(to, subject, messageID, body string) string {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + ReplySubject(subject) + "\r\n")
	b.WriteString("In-Reply-To: " + messageID + "\r\n")
	b.WriteString("References: " + messageID + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// SendReply builds a reply to the original message, encodes it, and sends
// it on the original thread.
func (c *Client) SendReply(ctx context.Context, original Message, body string) error {
	if !c.Authenticated() {
		return nil
	}
	mime := BuildReplyMIME(original.FromEmail, original.Subject, original.MessageIDHeader, body)
	if err := c.SendRaw(ctx, EncodeBase64URL([]byte(mime)), original.ThreadID); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "reply sent",
		logging.Operation("send_reply"),
		logging.Status(logging.StatusSuccess),
		slog.String("thread", original.ThreadID),
		logging.UserHash(original.FromEmail))
	return nil
}

func (c *Client) getJSON(ctx context.Context, u, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer res.Body.Close()
	if err := checkStatus(res); err != nil {
		return err
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// checkStatus maps non-2xx responses to TransportError, carrying the
// status code and raw body googleapi captures from the response.
func checkStatus(res *http.Response) error {
	err := googleapi.CheckResponse(res)
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &TransportError{Status: gerr.Code, Body: gerr.Body, Err: gerr}
	}
	return &TransportError{Status: res.StatusCode, Err: err}
}
