// Package whatsapp is the WhatsApp Cloud API transport: it verifies
// and parses webhook deliveries, resolves senders into users, hands
// the text to the agent and sends the reply back through the Graph API.
package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/thallesrafaell/jurandir-finance/internal/agent"
	"github.com/thallesrafaell/jurandir-finance/internal/agent/tools"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
	"github.com/thallesrafaell/jurandir-finance/internal/httputil"
)

const (
	apologyReply = "Desculpe, ocorreu um erro ao processar sua mensagem. Tente novamente."

	maxWebhookBody = 1 << 20 // 1MB
)

// Sender delivers outbound messages. Satisfied by *Client.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
	MarkReadWithTyping(ctx context.Context, messageID string) error
}

// Handler receives Cloud API webhooks and drives the agent.
type Handler struct {
	agent       *agent.Agent
	users       repositories.UserRepository
	groups      repositories.GroupRepository
	sender      Sender
	verifyToken string
	appSecret   string
	trigger     *regexp.Regexp
	logger      *slog.Logger
}

// NewHandler wires the webhook handler. In group chats the assistant
// only reacts to messages addressed to it by name.
func NewHandler(
	ag *agent.Agent,
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	sender Sender,
	verifyToken, appSecret, agentName string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		agent:       ag,
		users:       users,
		groups:      groups,
		sender:      sender,
		verifyToken: verifyToken,
		appSecret:   appSecret,
		trigger:     triggerPattern(agentName),
		logger:      logger,
	}
}

// triggerPattern matches the agent's name at the start of a message,
// optionally followed by a comma or colon, case-insensitively.
func triggerPattern(agentName string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(agentName) + `[,:]?\s*`)
}

// Verify handles the GET subscription handshake. Meta sends the verify
// token and expects the challenge echoed back verbatim.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	httputil.RespondError(w, http.StatusForbidden, "webhook verification failed")
}

// Receive handles POST deliveries. The payload signature is checked
// before anything is parsed; messages are then processed one by one and
// the delivery is acknowledged regardless of per-message outcomes.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if h.appSecret != "" && !validSignature(body, r.Header.Get("X-Hub-Signature-256"), h.appSecret) {
		h.logger.Warn("webhook signature mismatch")
		httputil.RespondError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	for _, msg := range extractMessages(&payload) {
		h.handleMessage(r.Context(), msg)
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validSignature checks the X-Hub-Signature-256 header, an HMAC-SHA256
// of the raw body keyed with the app secret.
func validSignature(body []byte, header, secret string) bool {
	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	want, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(want, mac.Sum(nil))
}

func (h *Handler) handleMessage(ctx context.Context, msg inbound) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if msg.IsGroup {
		if !h.trigger.MatchString(text) {
			return
		}
		text = strings.TrimSpace(h.trigger.ReplaceAllString(text, ""))
		if text == "" {
			return
		}
	}

	user, err := h.users.GetOrCreateByPhone(ctx, msg.SenderPhone, msg.SenderName)
	if err != nil {
		h.logger.Error("failed to resolve sender", "phone", msg.SenderPhone, "error", err)
		h.reply(ctx, msg, apologyReply)
		return
	}

	mc := tools.MessageContext{UserID: user.ID}
	if msg.IsGroup {
		mc.GroupID = msg.ChatID
		mc.IsGroup = true
		if err := h.groups.EnsureMember(ctx, msg.ChatID, user.ID, ""); err != nil {
			h.logger.Error("failed to register group member", "group_id", msg.ChatID, "error", err)
			h.reply(ctx, msg, apologyReply)
			return
		}
	}

	if err := h.sender.MarkReadWithTyping(ctx, msg.MessageID); err != nil {
		h.logger.Warn("failed to send typing indicator", "error", err)
	}

	reply, err := h.agent.ProcessMessage(ctx, text, mc)
	if err != nil {
		h.logger.Error("failed to process message", "user_id", user.ID, "error", err)
		reply = apologyReply
	}
	if reply == "" {
		return
	}

	h.reply(ctx, msg, reply)
}

func (h *Handler) reply(ctx context.Context, msg inbound, reply string) {
	timer := time.NewTimer(TypingDelay(reply))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}

	to := msg.SenderPhone
	if msg.IsGroup {
		to = msg.ChatID
	}
	if err := h.sender.SendText(ctx, to, reply); err != nil {
		h.logger.Error("failed to send reply", "to", to, "error", err)
	}
}
