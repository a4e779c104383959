package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply   string
	err     error
	gotKey  string
	gotMsgs []Message
	calls   int
}

func (p *fakeProvider) Reply(_ context.Context, apiKey, system string, history []Message) (string, error) {
	p.calls++
	p.gotKey = apiKey
	p.gotMsgs = history
	if system == "" {
		return "", errors.New("missing persona")
	}
	return p.reply, p.err
}

type fakeKeys struct {
	key string
	err error
}

func (k fakeKeys) AIKey(context.Context, uuid.UUID) (string, error) {
	return k.key, k.err
}

type fakeRepo struct {
	saved map[uuid.UUID]*Transcript
}

func (r *fakeRepo) Find(userID uuid.UUID) (*Transcript, error) {
	return r.saved[userID], nil
}

func (r *fakeRepo) Save(t *Transcript) error {
	r.saved[t.UserID] = t
	return nil
}

func (r *fakeRepo) Delete(userID uuid.UUID) error {
	delete(r.saved, userID)
	return nil
}

func newTestService(p Provider, keys KeySource, serverKey string) (*service, *fakeRepo) {
	repo := &fakeRepo{saved: map[uuid.UUID]*Transcript{}}
	return &service{
		provider:  p,
		keys:      keys,
		repo:      repo,
		serverKey: serverKey,
		now:       func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) },
	}, repo
}

func ask(text string) ChatRequest {
	return ChatRequest{Messages: []Message{{Role: RoleUser, Content: text}}}
}

func TestChatReply(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{reply: "Take a ten minute walk."}
	svc, repo := newTestService(p, fakeKeys{}, "server-key")
	userID := uuid.New()

	resp, err := svc.Chat(ctx, userID, ask("I feel stuck"))
	require.NoError(t, err)
	assert.False(t, resp.Fallback)
	assert.Equal(t, RoleAssistant, resp.Message.Role)
	assert.Equal(t, "Take a ten minute walk.", resp.Message.Content)
	assert.Equal(t, "server-key", p.gotKey)

	history, err := svc.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, RoleUser, history.Messages[0].Role)

	require.NoError(t, svc.ClearHistory(ctx, userID))
	assert.Empty(t, repo.saved)
}

func TestChatPrefersUserKey(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	svc, _ := newTestService(p, fakeKeys{key: "user-key"}, "server-key")

	_, err := svc.Chat(context.Background(), uuid.New(), ask("hi"))
	require.NoError(t, err)
	assert.Equal(t, "user-key", p.gotKey)

	p2 := &fakeProvider{reply: "ok"}
	svc2, _ := newTestService(p2, fakeKeys{err: errors.New("decrypt failed")}, "server-key")
	_, err = svc2.Chat(context.Background(), uuid.New(), ask("hi"))
	require.NoError(t, err)
	assert.Equal(t, "server-key", p2.gotKey)
}

func TestChatFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("provider failure", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("quota exceeded")}
		svc, repo := newTestService(p, fakeKeys{}, "server-key")
		resp, err := svc.Chat(ctx, uuid.New(), ask("hello"))
		require.NoError(t, err)
		assert.True(t, resp.Fallback)
		assert.Equal(t, apology, resp.Message.Content)
		assert.Empty(t, repo.saved)
	})

	t.Run("no key anywhere", func(t *testing.T) {
		p := &fakeProvider{reply: "unused"}
		svc, _ := newTestService(p, fakeKeys{}, "")
		resp, err := svc.Chat(ctx, uuid.New(), ask("hello"))
		require.NoError(t, err)
		assert.True(t, resp.Fallback)
		assert.Zero(t, p.calls)
	})
}

func TestChatValidation(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{reply: "ok"}, fakeKeys{}, "k")
	ctx := context.Background()

	cases := map[string]ChatRequest{
		"empty":          {},
		"blank":          ask("   "),
		"ends assistant": {Messages: []Message{{Role: RoleUser, Content: "a"}, {Role: RoleAssistant, Content: "b"}}},
		"bad role":       {Messages: []Message{{Role: "system", Content: "a"}}},
		"too long":       ask(strings.Repeat("x", maxMessageLength+1)),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Chat(ctx, uuid.New(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestHistoryWindow(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	svc, _ := newTestService(p, fakeKeys{}, "k")

	var msgs []Message
	for i := 0; i < maxHistory+5; i++ {
		msgs = append(msgs, Message{Role: RoleAssistant, Content: "earlier"})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: "latest"})

	_, err := svc.Chat(context.Background(), uuid.New(), ChatRequest{Messages: msgs})
	require.NoError(t, err)
	require.Len(t, p.gotMsgs, maxHistory)
	assert.Equal(t, "latest", p.gotMsgs[maxHistory-1].Content)
}
