package gmail

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawMessage(id string, date Millis, headers ...Header) *RawMessage {
	return &RawMessage{
		ID:           id,
		ThreadID:     "thread-1",
		InternalDate: date,
		Payload: &Part{
			MimeType: "text/plain",
			Headers:  headers,
			Body:     &Body{Data: EncodeBase64URL([]byte("body of " + id))},
		},
	}
}

func fullHeaders() []Header {
	return []Header{
		{Name: "Subject", Value: "Hello"},
		{Name: "From", Value: "Ada Lovelace <ada@example.com>"},
		{Name: "Message-ID", Value: "<msg-1@mail.example.com>"},
	}
}

func TestParseMessage(t *testing.T) {
	t.Run("complete message", func(t *testing.T) {
		raw := rawMessage("m1", 1700000000000, fullHeaders()...)
		raw.Snippet = "Hello there"
		raw.LabelIDs = []string{"INBOX", "UNREAD"}

		m, ok := ParseMessage(raw)
		require.True(t, ok)
		assert.Equal(t, "m1", m.ID)
		assert.Equal(t, "thread-1", m.ThreadID)
		assert.Equal(t, "Hello", m.Subject)
		assert.Equal(t, "Ada Lovelace <ada@example.com>", m.From)
		assert.Equal(t, "ada@example.com", m.FromEmail)
		assert.Equal(t, "<msg-1@mail.example.com>", m.MessageIDHeader)
		assert.Equal(t, time.UnixMilli(1700000000000).UTC(), m.InternalDate)
		assert.True(t, m.IsUnread)
		assert.Equal(t, "body of m1", m.BodyPlain)
	})

	t.Run("read without UNREAD label", func(t *testing.T) {
		raw := rawMessage("m1", 1, fullHeaders()...)
		raw.LabelIDs = []string{"INBOX", "IMPORTANT"}
		m, ok := ParseMessage(raw)
		require.True(t, ok)
		assert.False(t, m.IsUnread)
	})

	t.Run("bare from address", func(t *testing.T) {
		raw := rawMessage("m1", 1,
			Header{Name: "Subject", Value: "Hi"},
			Header{Name: "From", Value: "ada@example.com"},
			Header{Name: "Message-Id", Value: "<x@y>"},
		)
		m, ok := ParseMessage(raw)
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", m.FromEmail)
	})

	t.Run("missing mandatory headers", func(t *testing.T) {
		for _, drop := range []string{"Subject", "From", "Message-ID"} {
			var headers []Header
			for _, h := range fullHeaders() {
				if h.Name != drop {
					headers = append(headers, h)
				}
			}
			_, ok := ParseMessage(rawMessage("m1", 1, headers...))
			assert.False(t, ok, "message without %s should not parse", drop)
		}
	})

	t.Run("absent date is not a failure", func(t *testing.T) {
		m, ok := ParseMessage(rawMessage("m1", 0, fullHeaders()...))
		require.True(t, ok)
		assert.True(t, m.InternalDate.IsZero())
	})

	t.Run("nil message and payload", func(t *testing.T) {
		_, ok := ParseMessage(nil)
		assert.False(t, ok)
		_, ok = ParseMessage(&RawMessage{ID: "m1"})
		assert.False(t, ok)
	})
}

func TestMillisUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Millis
	}{
		{name: "quoted string", input: `{"internalDate":"1700000000000"}`, want: 1700000000000},
		{name: "bare number", input: `{"internalDate":1700000000000}`, want: 1700000000000},
		{name: "absent", input: `{}`, want: 0},
		{name: "null", input: `{"internalDate":null}`, want: 0},
		{name: "malformed", input: `{"internalDate":"soon"}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.input), &raw))
			assert.Equal(t, tt.want, raw.InternalDate)
		})
	}
}

func TestParseThreadOrdering(t *testing.T) {
	raws := []*RawMessage{
		rawMessage("newest", 3000, fullHeaders()...),
		rawMessage("oldest", 1000, fullHeaders()...),
		rawMessage("undated", 0, fullHeaders()...),
		rawMessage("middle", 2000, fullHeaders()...),
		{ID: "broken"}, // no payload, dropped
	}

	msgs := ParseThread(raws)
	require.Len(t, msgs, 4)
	assert.Equal(t, "undated", msgs[0].ID)
	assert.Equal(t, "oldest", msgs[1].ID)
	assert.Equal(t, "middle", msgs[2].ID)
	assert.Equal(t, "newest", msgs[3].ID)
}

func TestMessageBody(t *testing.T) {
	m := Message{BodyPlain: "plain", Snippet: "snippet"}
	assert.Equal(t, "plain", m.Body())

	m.BodyPlain = ""
	assert.Equal(t, "snippet", m.Body())
}

func TestGravatarURL(t *testing.T) {
	m := Message{FromEmail: " Ada@Example.COM "}
	// md5("ada@example.com")
	assert.Equal(t,
		"https://www.gravatar.com/avatar/3e3417d7ef77d5932a6734b916515ed5?d=identicon&s=80",
		m.GravatarURL())

	assert.Empty(t, Message{}.GravatarURL())
}

func TestFormatDisplayDate(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "zero time", t: time.Time{}, want: ""},
		{name: "same day", t: time.Date(2026, time.March, 14, 9, 4, 0, 0, time.UTC), want: "9:04 AM"},
		{name: "within last week", t: time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC), want: "Wednesday"},
		{name: "same year", t: time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC), want: "Jan 5"},
		{name: "earlier year", t: time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC), want: "12/31/24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDisplayDate(tt.t, now))
		})
	}
}
