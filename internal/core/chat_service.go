package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/deepak6009/customer-service-bot/internal/store"
)

// RecordStore is the record-store collaborator the chat engine reads
// from. Products and company info are re-fetched per request as a
// consistent snapshot; the engine holds no state between requests.
type RecordStore interface {
	ScanProducts(ctx context.Context) ([]store.Product, error)
	GetCompany(ctx context.Context) (*store.CompanyInfo, error)
	SaveChat(ctx context.Context, user store.ChatUser, messages []store.ChatMessage) (*store.ChatRecord, error)
}

// LinkIssuer produces a time-limited URL for a stored object key.
type LinkIssuer interface {
	SignedURL(ctx context.Context, key string) (string, error)
}

type ChatService struct {
	records RecordStore
	links   LinkIssuer
	log     *zap.Logger
}

func NewChatService(records RecordStore, links LinkIssuer, log *zap.Logger) *ChatService {
	return &ChatService{records: records, links: links, log: log}
}

// Answer resolves a single free-text query into a structured reply.
// The caller is responsible for rejecting empty input before calling.
func (s *ChatService) Answer(ctx context.Context, rawQuery string) (Reply, error) {
	intent, q := Classify(rawQuery)

	switch intent {
	case IntentTooShort:
		return TooShortReply(), nil
	case IntentGreeting:
		return GreetingReply(), nil
	case IntentTermination:
		return TerminationReply(), nil
	}

	if intent == IntentCompanyInfo {
		info, err := s.records.GetCompany(ctx)
		if err != nil {
			return Reply{}, fmt.Errorf("failed to fetch company info: %w", err)
		}
		if info != nil {
			products, err := s.records.ScanProducts(ctx)
			if err != nil {
				return Reply{}, fmt.Errorf("failed to scan products: %w", err)
			}
			return CompanyReply(info, products), nil
		}
		// No company record configured yet: degrade to product lookup.
		s.log.Warn("company info requested but none configured", zap.String("query", q))
	}

	products, err := s.records.ScanProducts(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to scan products: %w", err)
	}

	matched := MatchProduct(products, q)
	if matched == nil {
		s.log.Debug("no product matched query", zap.String("query", q))
		return FallbackReply(), nil
	}

	imageURL := ""
	if WantsImage(q) && matched.ImageKey != "" {
		imageURL, err = s.links.SignedURL(ctx, matched.ImageKey)
		if err != nil {
			return Reply{}, fmt.Errorf("failed to sign image url for key %q: %w", matched.ImageKey, err)
		}
	}

	return ProductReply(matched, imageURL), nil
}

// SaveTranscript persists a finished conversation and returns the
// generated chat record.
func (s *ChatService) SaveTranscript(ctx context.Context, user store.ChatUser, messages []store.ChatMessage) (*store.ChatRecord, error) {
	record, err := s.records.SaveChat(ctx, user, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to save chat transcript: %w", err)
	}
	s.log.Info("chat transcript saved",
		zap.String("chat_id", record.ChatID),
		zap.Int("messages", len(record.Messages)))
	return record, nil
}
