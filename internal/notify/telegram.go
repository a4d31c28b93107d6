// Package notify delivers best-effort storefront notifications through the
// Telegram Bot API. Delivery is advisory: every entry point returns a bool
// and never an error, so a broken bot can never break checkout.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/minhvuongle/yenvang-backend/pkg/config"
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/metrics"
)

const defaultAPIBase = "https://api.telegram.org"

// ConsultationRequest is a customer's callback request from the consultation
// form.
type ConsultationRequest struct {
	Name      string
	Phone     string
	Email     *string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// TelegramClient sends order and consultation messages to their configured
// chats.
type TelegramClient struct {
	cfg     config.TelegramConfig
	http    *http.Client
	apiBase string
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewTelegramClient builds a client from config. An unconfigured bot is
// valid: every send becomes a logged no-op returning false.
func NewTelegramClient(cfg config.TelegramConfig, logg *logger.Logger, m *metrics.StorefrontMetrics) *TelegramClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TelegramClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		apiBase: defaultAPIBase,
		logg:    logg,
		metrics: m,
	}
}

// NotifyOrder announces a freshly created order in the order chat.
func (c *TelegramClient) NotifyOrder(ctx context.Context, order *models.Order) bool {
	if order == nil {
		return false
	}
	return c.send(ctx, "order", c.cfg.OrderChatID, formatOrderMessage(order))
}

// NotifyConsultation announces a consultation request, preferring the
// dedicated consultation chat when one is configured.
func (c *TelegramClient) NotifyConsultation(ctx context.Context, req ConsultationRequest) bool {
	return c.send(ctx, "consultation", c.cfg.ConsultationTarget(), formatConsultationMessage(req))
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *TelegramClient) send(ctx context.Context, kind, chatID, text string) bool {
	if !c.cfg.Configured() || chatID == "" {
		c.logg.Warn(ctx, "telegram not configured, dropping "+kind+" notification")
		return false
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return c.fail(ctx, kind, err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return c.fail(ctx, kind, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, kind, err)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.fail(ctx, kind, err)
	}
	if !result.OK {
		return c.fail(ctx, kind, fmt.Errorf("telegram: %s", result.Description))
	}
	return true
}

func (c *TelegramClient) fail(ctx context.Context, kind string, err error) bool {
	c.logg.Error(ctx, "telegram "+kind+" notification failed", err)
	c.metrics.IncNotifyFailure(kind)
	return false
}
