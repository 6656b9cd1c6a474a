package handler

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/llm"
)

// memStore is an in-memory implementation of every repository the services
// need, so handler tests exercise the real service layer end to end.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*domain.User
	creds    map[string]*domain.Credential
	sessions map[string]*domain.Session
	chats    map[string]*domain.Chat
	messages map[uuid.UUID][]domain.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*domain.User),
		creds:    make(map[string]*domain.Credential),
		sessions: make(map[string]*domain.Session),
		chats:    make(map[string]*domain.Chat),
		messages: make(map[uuid.UUID][]domain.Message),
	}
}

func (s *memStore) Create(ctx context.Context, user *domain.User, cred *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.creds[cred.ID]; exists {
		return domain.ErrEmailTaken
	}
	u, c := *user, *cred
	s.users[user.ID] = &u
	s.creds[cred.ID] = &c
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *memStore) GetCredential(ctx context.Context, credentialID string) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creds[credentialID]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *memStore) CreateSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *memStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.ExpiresAt = expiresAt
	}
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := time.Now()
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

func chatKey(userID uuid.UUID, personaID string) string {
	return userID.String() + "/" + personaID
}

func (s *memStore) Resolve(ctx context.Context, userID uuid.UUID, personaID string) (*domain.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := chatKey(userID, personaID)
	if chat, ok := s.chats[key]; ok {
		copied := *chat
		return &copied, nil
	}
	chat := &domain.Chat{
		ID:        uuid.New(),
		UserID:    userID,
		PersonaID: personaID,
		CreatedAt: time.Now(),
	}
	s.chats[key] = chat
	copied := *chat
	return &copied, nil
}

func (s *memStore) Find(ctx context.Context, userID uuid.UUID, personaID string) (*domain.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatKey(userID, personaID)]
	if !ok {
		return nil, nil
	}
	copied := *chat
	return &copied, nil
}

func (s *memStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[message.ChatID] = append(s.messages[message.ChatID], *message)
	return nil
}

func (s *memStore) ListByChat(ctx context.Context, chatID uuid.UUID) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages[chatID]...), nil
}

func (s *memStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// sessionRepo and messageRepo adapt memStore to the repository interfaces
// whose method names collide (both have a Create).
type sessionRepo struct{ *memStore }

func (r sessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return r.CreateSession(ctx, session)
}

type messageRepo struct{ *memStore }

func (r messageRepo) Create(ctx context.Context, message *domain.Message) error {
	return r.CreateMessage(ctx, message)
}

// stubProvider serves scripted completions and streams.
type stubProvider struct {
	completeText string
	completeErr  error
	openErr      error
	frags        []llm.Fragment
	streamErr    error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	return p.completeText, p.completeErr
}

func (p *stubProvider) StreamComplete(ctx context.Context, req llm.Request) (llm.Stream, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	terminal := p.streamErr
	if terminal == nil {
		terminal = io.EOF
	}
	return &stubStream{frags: p.frags, err: terminal}, nil
}

type stubStream struct {
	frags []llm.Fragment
	err   error
	next  int
}

func (s *stubStream) Recv() (llm.Fragment, error) {
	if s.next >= len(s.frags) {
		return llm.Fragment{}, s.err
	}
	frag := s.frags[s.next]
	s.next++
	return frag, nil
}

func (s *stubStream) Close() error { return nil }
