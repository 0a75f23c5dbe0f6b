package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/ydaher97/code-crafter/internal/ai"
	"github.com/ydaher97/code-crafter/internal/domain/model"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

// TopicService serves topic suggestions and topic explanations. Explanations
// are expensive and stable for a given topic, so responses are cached in
// Redis keyed by topic slug. Cache failures degrade to a direct gateway call.
type TopicService struct {
	gateway      ai.Gateway
	rdb          *redis.Client
	explainerTTL time.Duration
	topicTTL     time.Duration
}

func NewTopicService(gateway ai.Gateway, rdb *redis.Client, explainerTTL, topicTTL time.Duration) *TopicService {
	return &TopicService{
		gateway:      gateway,
		rdb:          rdb,
		explainerTTL: explainerTTL,
		topicTTL:     topicTTL,
	}
}

// Suggest generates a practice topic for the difficulty. Suggestions are
// cached briefly so dashboard refreshes do not burn gateway calls, while
// still rotating over time.
func (s *TopicService) Suggest(ctx context.Context, difficulty model.Difficulty) (string, error) {
	key := "topic:suggest:" + slug.Make(string(difficulty))
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		} else if err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("Topic cache read failed: %v", err)
		}
	}

	out, err := s.gateway.GenerateTopic(ctx, ai.TopicGenerationInput{Difficulty: difficulty})
	if err != nil {
		return "", err
	}
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, out.Topic, s.topicTTL).Err(); err != nil {
			log.Printf("Topic cache write failed: %v", err)
		}
	}
	return out.Topic, nil
}

// Explain returns the explanation bundle for a topic, cache first.
func (s *TopicService) Explain(ctx context.Context, topic string) (*ai.TopicExplainerOutput, error) {
	key := "topic:explain:" + slug.Make(topic)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			var out ai.TopicExplainerOutput
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return &out, nil
			}
			log.Printf("Discarding malformed explainer cache entry for %q", key)
		} else if err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("Explainer cache read failed: %v", err)
		}
	}

	out, err := s.gateway.ExplainTopic(ctx, ai.TopicExplainerInput{Topic: topic})
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, key, payload, s.explainerTTL).Err(); err != nil {
				log.Printf("Explainer cache write failed: %v", err)
			}
		}
	}
	return &out, nil
}
