package history

import (
	"context"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/repository/specification"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/llm"

	"github.com/google/uuid"
)

// WindowSize is how many stored turns feed the next prompt.
const WindowSize = 10

type Kind int

const (
	Found Kind = iota
	NotFound
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}

// Result keeps "no conversation yet" apart from "store failed".
// Turns and Messages are always non-nil and in insertion order.
type Result struct {
	Kind     Kind
	Turns    []*entity.ChatMessage
	Messages []llm.Message
	Err      error
}

func empty(kind Kind, err error) Result {
	return Result{Kind: kind, Turns: []*entity.ChatMessage{}, Messages: []llm.Message{}, Err: err}
}

type Loader struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLoader(uowFactory unitofwork.RepositoryFactory) *Loader {
	return &Loader{uowFactory: uowFactory}
}

// LoadWindow returns the most recent WindowSize turns of the user's conversation.
func (l *Loader) LoadWindow(ctx context.Context, userId uuid.UUID) Result {
	return l.load(ctx, userId, WindowSize)
}

// LoadAll returns up to limit most recent turns; limit <= 0 returns everything.
func (l *Loader) LoadAll(ctx context.Context, userId uuid.UUID, limit int) Result {
	return l.load(ctx, userId, limit)
}

func (l *Loader) load(ctx context.Context, userId uuid.UUID, limit int) Result {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return empty(Unavailable, err)
	}
	if session == nil {
		return empty(NotFound, nil)
	}

	rows, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.InsertionOrder{Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return empty(Unavailable, err)
	}

	turns := make([]*entity.ChatMessage, 0, len(rows))
	messages := make([]llm.Message, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		turns = append(turns, rows[i])
		messages = append(messages, toMessage(rows[i]))
	}
	return Result{Kind: Found, Turns: turns, Messages: messages}
}

func toMessage(m *entity.ChatMessage) llm.Message {
	role := llm.RoleUser
	if m.Role == entity.ChatRoleAssistant {
		role = llm.RoleAssistant
	}
	return llm.Message{Role: role, Content: m.Content}
}
