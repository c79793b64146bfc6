package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"trade-journal/cache"
	"trade-journal/database"
	"trade-journal/database/webhooks"
	"trade-journal/events"
)

// WebhookManager delivers journal events to user-configured HTTP endpoints.
// Delivery is fire-and-forget: a failing endpoint is logged and skipped, it
// never surfaces into the mutation that produced the event.
type WebhookManager struct {
	repo     *webhooks.Repository
	redis    *cache.RedisClient
	client   *http.Client
	cacheTTL time.Duration
}

// WebhookPayload is the JSON body posted to subscribed endpoints
type WebhookPayload struct {
	Event      string      `json:"event"`
	UserID     string      `json:"user_id"`
	AccountID  string      `json:"account_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// NewWebhookManager creates a new webhook manager
func NewWebhookManager(repo *webhooks.Repository, redis *cache.RedisClient, timeout, cacheTTL time.Duration) *WebhookManager {
	return &WebhookManager{
		repo:     repo,
		redis:    redis,
		cacheTTL: cacheTTL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements events.Handler
func (wm *WebhookManager) Name() string {
	return "webhook-manager"
}

// Handle implements events.Handler: deliver the event to every enabled,
// subscribed webhook of the event's user.
func (wm *WebhookManager) Handle(event events.Event) {
	hooks, err := wm.enabledWebhooks(event.UserID)
	if err != nil {
		log.Printf("⚠️  Failed to load webhooks: %v", err)
		return
	}
	if len(hooks) == 0 {
		return
	}

	payload := WebhookPayload{
		Event:      event.Type,
		UserID:     event.UserID,
		AccountID:  event.AccountID,
		OccurredAt: event.OccurredAt,
		Data:       event.Payload,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️  Failed to marshal webhook payload: %v", err)
		return
	}

	for _, hook := range hooks {
		if hook.SubscribedTo(event.Type) {
			go wm.deliver(hook, body)
		}
	}
}

func webhookCacheKey(userID string) string {
	return "webhooks:enabled:" + userID
}

func (wm *WebhookManager) enabledWebhooks(userID string) ([]database.Webhook, error) {
	// Try cache first
	if wm.redis != nil {
		var cached []database.Webhook
		if err := wm.redis.Get(context.Background(), webhookCacheKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	hooks, err := wm.repo.ListEnabled(userID)
	if err != nil {
		return nil, err
	}

	if wm.redis != nil {
		_ = wm.redis.Set(context.Background(), webhookCacheKey(userID), hooks, wm.cacheTTL)
	}
	return hooks, nil
}

// RefreshCache drops a user's cached webhook list after configuration changes
func (wm *WebhookManager) RefreshCache(userID string) {
	if wm.redis != nil {
		_ = wm.redis.Delete(context.Background(), webhookCacheKey(userID))
	}
}

func (wm *WebhookManager) deliver(hook database.Webhook, body []byte) {
	req, err := http.NewRequest(http.MethodPost, hook.URL, bytes.NewReader(body))
	if err != nil {
		log.Printf("⚠️  Webhook %s: bad request: %v", hook.Name, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wm.client.Do(req)
	if err != nil {
		log.Printf("⚠️  Webhook %s delivery failed: %v", hook.Name, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("⚠️  Webhook %s returned %s", hook.Name, resp.Status)
		return
	}
	log.Printf("📤 Webhook %s delivered (%s)", hook.Name, fmt.Sprintf("%d bytes", len(body)))
}
