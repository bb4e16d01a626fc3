package service

import (
	"context"
	"encoding/json"
	"strings"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/entity"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/events"
	"agrisense-be/pkg/llm"
	"agrisense-be/pkg/rag/history"
	"agrisense-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

const (
	msgMessageRequired   = "Message is required"
	msgAIUnavailable     = "AI service temporarily unavailable"
	msgAIUnavailableHint = "I'm having a technical issue. Please try again."

	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// ChatUnavailableBody is the 503 body the chat widget renders as an assistant bubble.
func ChatUnavailableBody() map[string]string {
	return map[string]string{
		"message":  msgAIUnavailable,
		"response": msgAIUnavailableHint,
	}
}

type ProfileKind int

const (
	ProfileFound ProfileKind = iota
	ProfileNotFound
	ProfileUnavailable
)

// ProfileLookup keeps "no such user" apart from "store failed"; both degrade to an empty profile.
type ProfileLookup struct {
	Kind ProfileKind
	User *entity.User
	Err  error
}

type ChatCompletionConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

type IChatbotService interface {
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, limit int) (*dto.ChatHistoryResponse, error)
}

type chatbotService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	historyLoader    *history.Loader
	publisherService IPublisherService
	eventPublisher   events.Publisher
	completion       ChatCompletionConfig
	logger           logger.ILogger
	llmLogger        logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	completion ChatCompletionConfig,
	log logger.ILogger,
	llmLog logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		historyLoader:    history.NewLoader(uowFactory),
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		completion:       completion,
		logger:           log,
		llmLogger:        llmLog,
	}
}

// Chat answers one question. The turn is persisted only after a successful completion.
func (cs *chatbotService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperror.Validation(msgMessageRequired)
	}

	// A client hanging up must not abort the completion or the writes that follow it.
	ctx = context.WithoutCancel(ctx)

	profile := cs.lookupProfile(ctx, userId)
	if profile.Kind == ProfileUnavailable {
		cs.logger.Warn("CHATBOT", "Profile lookup failed, continuing without profile", map[string]interface{}{
			"user_id": userId.String(),
			"error":   profile.Err.Error(),
		})
	}

	window := cs.historyLoader.LoadWindow(ctx, userId)
	if window.Kind == history.Unavailable {
		cs.logger.Warn("CHATBOT", "History load failed, continuing without history", map[string]interface{}{
			"user_id": userId.String(),
			"error":   window.Err.Error(),
		})
	}

	messages := prompt.NewChatPromptBuilder(toPromptProfile(profile.User), window.Messages, req.Message, req.Language).Build()
	cs.llmLogger.Debug("CHATBOT", "Chat completion request", map[string]interface{}{
		"user_id":     userId.String(),
		"model":       cs.completion.Model,
		"prior_turns": len(messages) - 2,
		"messages":    messages,
	})

	answer, err := cs.llmProvider.Chat(ctx, messages,
		llm.WithModel(cs.completion.Model),
		llm.WithTemperature(cs.completion.Temperature),
		llm.WithMaxTokens(cs.completion.MaxTokens),
	)
	if err != nil {
		cs.logger.Error("CHATBOT", "Chat completion failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Unavailable(msgAIUnavailable, err)
	}
	cs.llmLogger.Debug("CHATBOT", "Chat completion response", map[string]interface{}{
		"user_id": userId.String(),
		"answer":  answer,
	})

	cs.appendTurn(ctx, userId, entity.ChatRoleUser, req.Message)
	cs.appendTurn(ctx, userId, entity.ChatRoleAssistant, answer)

	location := ""
	if profile.User != nil {
		location = profile.User.Location
	}
	cs.dispatchIndexJob(ctx, dto.IndexChatTurnMessage{
		UserId:   userId,
		Question: req.Message,
		Answer:   answer,
		Location: location,
	})
	publishEvent(ctx, cs.eventPublisher, cs.logger, events.New(events.TypeChatAnswered, map[string]any{
		"user_id":     userId.String(),
		"language":    prompt.ResolveLanguage(req.Language),
		"prior_turns": len(window.Messages),
	}))

	return &dto.ChatResponse{
		Response:     answer,
		ContextsUsed: 0,
		Audio:        nil,
	}, nil
}

func (cs *chatbotService) GetHistory(ctx context.Context, userId uuid.UUID, limit int) (*dto.ChatHistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	res := cs.historyLoader.LoadAll(ctx, userId, limit)
	if res.Kind == history.Unavailable {
		return nil, apperror.Internal("Failed to load chat history", res.Err)
	}

	out := make([]dto.ChatMessageDTO, len(res.Turns))
	for i, t := range res.Turns {
		out[i] = dto.ChatMessageDTO{
			Id:        t.Id,
			Role:      string(t.Role),
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		}
	}
	return &dto.ChatHistoryResponse{Messages: out}, nil
}

func (cs *chatbotService) lookupProfile(ctx context.Context, userId uuid.UUID) ProfileLookup {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUserWithHistory(ctx, uow, userId)
	switch {
	case err != nil:
		return ProfileLookup{Kind: ProfileUnavailable, Err: err}
	case user == nil:
		return ProfileLookup{Kind: ProfileNotFound}
	default:
		return ProfileLookup{Kind: ProfileFound, User: user}
	}
}

// appendTurn is a single write: ensure the session row, then append. Failures are logged only.
func (cs *chatbotService) appendTurn(ctx context.Context, userId uuid.UUID, role entity.ChatRole, content string) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().Ensure(ctx, userId)
	if err != nil {
		cs.logger.Error("CHATBOT", "Failed to ensure chat session", map[string]interface{}{
			"user_id": userId.String(),
			"role":    string(role),
			"error":   err.Error(),
		})
		return
	}

	err = uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		ChatSessionId: session.Id,
		Role:          role,
		Content:       content,
	})
	if err != nil {
		cs.logger.Error("CHATBOT", "Failed to persist chat turn", map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": session.Id.String(),
			"role":       string(role),
			"error":      err.Error(),
		})
		return
	}

	if err := uow.ChatSessionRepository().Touch(ctx, session.Id); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to touch chat session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (cs *chatbotService) dispatchIndexJob(ctx context.Context, job dto.IndexChatTurnMessage) {
	if cs.publisherService == nil {
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		cs.logger.Error("CHATBOT", "Failed to encode index job", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := cs.publisherService.Publish(ctx, payload); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to dispatch index job", map[string]interface{}{
			"user_id": job.UserId.String(),
			"error":   err.Error(),
		})
	}
}

func toPromptProfile(u *entity.User) prompt.Profile {
	if u == nil {
		return prompt.Profile{}
	}
	items := make([]prompt.CropHistoryItem, len(u.CropHistory))
	for i, h := range u.CropHistory {
		items[i] = prompt.CropHistoryItem{CropName: h.CropName, Year: h.Year}
	}
	return prompt.Profile{
		Name:             u.Name,
		Location:         u.Location,
		Crops:            u.Crops,
		LandSize:         u.FarmDetails.LandSize,
		SoilType:         u.FarmDetails.SoilType,
		IrrigationSource: u.FarmDetails.IrrigationSource,
		FarmingType:      string(u.FarmDetails.FarmingType),
		History:          items,
	}
}
