package session

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/syedahmad/aireply/internal/genai"
	"github.com/syedahmad/aireply/internal/gmail"
	"github.com/syedahmad/aireply/internal/instrumentation"
	"github.com/syedahmad/aireply/internal/logging"
)

// MailGateway is the narrow mail-provider surface the session needs.
type MailGateway interface {
	FetchInbox(ctx context.Context) ([]gmail.Message, error)
	FetchThread(ctx context.Context, threadID string) ([]*gmail.RawMessage, error)
	SendReply(ctx context.Context, original gmail.Message, body string) error
}

// Generator is the generation-gateway surface the session needs.
type Generator interface {
	GenerateReplies(ctx context.Context, emailBody, notes string) (genai.ReplySet, error)
	GenerateSummary(ctx context.Context, emailBody string) (genai.Summary, error)
}

// SignInError reports a failed sign-in attempt with its underlying
// reason.
type SignInError struct {
	Reason string
}

func (e *SignInError) Error() string { return "sign-in failed: " + e.Reason }

// Config assembles a Session.
type Config struct {
	// Store persists the credential across launches. Optional; without
	// it the session is memory-only.
	Store CredentialStore

	// NewMailGateway builds a mail gateway bound to a credential. A
	// fresh gateway is constructed on every sign-in.
	NewMailGateway func(token string) MailGateway

	// Generator produces AI replies and summaries.
	Generator Generator

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// Session is the single mutation boundary for the credential and the
// in-memory inbox state. All state changes happen under one mutex;
// network calls run outside it, and results landing after a sign-out or
// a newer sign-in are discarded via the generation counter.
type Session struct {
	mu         sync.Mutex
	token      string
	mail       MailGateway
	inbox      []gmail.Message
	loading    bool
	lastError  string
	generation uint64

	store     CredentialStore
	newMail   func(token string) MailGateway
	generator Generator
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
}

// New builds a Session.
func New(cfg Config) *Session {
	s := &Session{
		store:     cfg.Store,
		newMail:   cfg.NewMailGateway,
		generator: cfg.Generator,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if s.store == nil {
		s.store = discardStore{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = &instrumentation.Metrics{}
	}
	s.logger = logging.WithService(s.logger, "session")
	return s
}

// discardStore is the memory-only fallback when no credential store is
// configured.
type discardStore struct{}

func (discardStore) Load() (string, error) { return "", nil }
func (discardStore) Save(string) error     { return nil }
func (discardStore) Clear() error          { return nil }

// SignedIn reports whether a credential is held.
func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Inbox returns a copy of the current inbox rows.
func (s *Session) Inbox() []gmail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.inbox)
}

// Loading reports whether an inbox fetch is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent user-visible error message, or "".
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SignIn installs the credential obtained from the external sign-in
// collaborator and persists it for later restoration. Persistence
// failures are logged but do not fail the sign-in.
func (s *Session) SignIn(token string) error {
	if strings.TrimSpace(token) == "" {
		return &SignInError{Reason: "empty credential"}
	}

	s.mu.Lock()
	wasSignedIn := s.token != ""
	s.setCredentialLocked(token)
	s.mu.Unlock()

	if err := s.store.Save(token); err != nil {
		s.logger.Warn("credential not persisted", logging.Err(err))
	}
	if !wasSignedIn {
		s.metrics.IncrementActiveSessions(context.Background())
	}
	s.logger.Info("signed in", slog.String("credential", logging.SanitizeToken(token)))
	return nil
}

// SignOut clears the credential and discards all in-memory state.
// In-flight operations started before the sign-out can no longer commit
// results.
func (s *Session) SignOut() {
	s.mu.Lock()
	wasSignedIn := s.token != ""
	s.token = ""
	s.mail = nil
	s.inbox = nil
	s.loading = false
	s.lastError = ""
	s.generation++
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Debug("credential not cleared from store", logging.Err(err))
	}
	if wasSignedIn {
		s.metrics.DecrementActiveSessions(context.Background())
		s.logger.Info("signed out")
	}
}

// RestoreSession attempts to resume a previous session from the
// credential store. It never fails: an absent or unreadable credential
// simply leaves the session signed out, so startup is never blocked.
// The return value reports whether a session was restored.
func (s *Session) RestoreSession() bool {
	logger := logging.WithOperation(s.logger, "restore_session")

	token, err := s.store.Load()
	if err != nil || token == "" {
		logger.Debug("no previous session to restore", logging.Err(err))
		return false
	}

	s.mu.Lock()
	wasSignedIn := s.token != ""
	s.setCredentialLocked(token)
	s.mu.Unlock()

	if !wasSignedIn {
		s.metrics.IncrementActiveSessions(context.Background())
	}
	logger.Info("session restored", slog.String("credential", logging.SanitizeToken(token)))
	return true
}

func (s *Session) setCredentialLocked(token string) {
	s.token = token
	s.lastError = ""
	s.generation++
	if s.newMail != nil {
		s.mail = s.newMail(token)
	}
}

// FetchInbox runs the inbox assembly and commits the rows as the new
// observable inbox state. Signed out it is a silent no-op. A listing
// failure surfaces as an error and leaves the previous rows untouched.
func (s *Session) FetchInbox(ctx context.Context) ([]gmail.Message, error) {
	s.mu.Lock()
	mail, gen := s.mail, s.generation
	if mail == nil {
		s.mu.Unlock()
		return nil, nil
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	ctx, span := instrumentation.StartOperationSpan(ctx, "session.fetch_inbox")
	start := time.Now()
	rows, err := mail.FetchInbox(ctx)
	s.metrics.RecordMailOperation(ctx, "fetch_inbox", instrumentation.StatusOf(err), time.Since(start))
	instrumentation.EndSpan(span, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if s.generation != gen {
		// Signed out or re-signed-in while the fetch was in flight.
		return nil, nil
	}
	if err != nil {
		s.lastError = "Failed to load inbox: " + err.Error()
		return nil, err
	}
	s.inbox = rows
	return slices.Clone(rows), nil
}

// FetchThread returns all messages of one thread ordered ascending by
// date. Any failure, and the signed-out state, yield an empty sequence:
// the caller falls back to showing just the originating message.
func (s *Session) FetchThread(ctx context.Context, threadID string) []gmail.Message {
	s.mu.Lock()
	mail := s.mail
	s.mu.Unlock()
	if mail == nil {
		return nil
	}

	ctx, span := instrumentation.StartOperationSpan(ctx, "session.fetch_thread",
		instrumentation.ThreadAttr(threadID))
	start := time.Now()
	raws, err := mail.FetchThread(ctx, threadID)
	s.metrics.RecordMailOperation(ctx, "fetch_thread", instrumentation.StatusOf(err), time.Since(start))
	instrumentation.EndSpan(span, err)

	if err != nil || len(raws) == 0 {
		return nil
	}
	return gmail.ParseThread(raws)
}

// SendReply sends a plain-text reply to the original message on its
// thread. Signed out it is a silent no-op.
func (s *Session) SendReply(ctx context.Context, original gmail.Message, body string) error {
	s.mu.Lock()
	mail, gen := s.mail, s.generation
	s.mu.Unlock()
	if mail == nil {
		return nil
	}

	ctx, span := instrumentation.StartOperationSpan(ctx, "session.send_reply",
		instrumentation.ThreadAttr(original.ThreadID))
	start := time.Now()
	err := mail.SendReply(ctx, original, body)
	s.metrics.RecordMailOperation(ctx, "send_reply", instrumentation.StatusOf(err), time.Since(start))
	instrumentation.EndSpan(span, err)

	if err != nil {
		s.mu.Lock()
		if s.generation == gen {
			s.lastError = "Failed to send reply: " + err.Error()
		}
		s.mu.Unlock()
	}
	return err
}

// GenerateReplies produces the three-draft reply set for an email body.
// Signed out it returns an empty set and no error; callers gate on
// SignedIn before using the drafts.
func (s *Session) GenerateReplies(ctx context.Context, emailBody, notes string) (genai.ReplySet, error) {
	s.mu.Lock()
	signedIn, gen := s.token != "", s.generation
	s.mu.Unlock()
	if !signedIn || s.generator == nil {
		return genai.ReplySet{}, nil
	}

	ctx, span := instrumentation.StartOperationSpan(ctx, "session.generate_replies")
	start := time.Now()
	set, err := s.generator.GenerateReplies(ctx, emailBody, notes)
	s.metrics.RecordGenerationOperation(ctx, "replies", instrumentation.StatusOf(err), time.Since(start))
	instrumentation.EndSpan(span, err)

	if err != nil {
		s.mu.Lock()
		if s.generation == gen {
			s.lastError = err.Error()
		}
		s.mu.Unlock()
		return genai.ReplySet{}, err
	}
	return set, nil
}

// GenerateSummary produces a summary of an email body. Signed out it
// returns an empty summary and no error.
func (s *Session) GenerateSummary(ctx context.Context, emailBody string) (genai.Summary, error) {
	s.mu.Lock()
	signedIn, gen := s.token != "", s.generation
	s.mu.Unlock()
	if !signedIn || s.generator == nil {
		return genai.Summary{}, nil
	}

	ctx, span := instrumentation.StartOperationSpan(ctx, "session.generate_summary")
	start := time.Now()
	summary, err := s.generator.GenerateSummary(ctx, emailBody)
	s.metrics.RecordGenerationOperation(ctx, "summary", instrumentation.StatusOf(err), time.Since(start))
	instrumentation.EndSpan(span, err)

	if err != nil {
		s.mu.Lock()
		if s.generation == gen {
			s.lastError = err.Error()
		}
		s.mu.Unlock()
		return genai.Summary{}, err
	}
	return summary, nil
}
