package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"companion-bot/internal/chat"
	"companion-bot/internal/content"
	"companion-bot/internal/model"
	pkgLog "companion-bot/pkg/log"
	pkgResponse "companion-bot/pkg/response"
	pkgTelegram "companion-bot/pkg/telegram"
)

const (
	// invoicePayloadPrefix tags Stars invoices so SuccessfulPayment updates
	// can be routed back to the catalog item.
	invoicePayloadPrefix = "content:"

	startMessage = "Hey! I'm Mia 💕 Just talk to me like you would anyone else — " +
		"text, photos, voice notes, whatever you feel like."
	helpMessage = "Send me a message and I'll answer. I understand photos and " +
		"voice notes too. If you want to see more of me, just ask 😉"
	errorMessage = "Something went wrong on my side, try again in a bit 🙈"
)

type handler struct {
	l         pkgLog.Logger
	uc        chat.UseCase
	contentUC content.UseCase
	bot       *pkgTelegram.Bot
	limiter   *rateLimiter
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine: Telegram expects an answer within a few seconds, but
// a full turn (history load + completion) can take longer than that.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Pre-checkout answers cannot wait for the background queue; Telegram
	// aborts the payment after 10 seconds without one.
	if update.PreCheckoutQuery != nil {
		h.answerPreCheckout(ctx, update.PreCheckoutQuery)
		pkgResponse.OK(c, map[string]string{"status": "accepted"})
		return
	}

	msg := update.Message
	if msg == nil {
		msg = update.BusinessMessage
	}
	if msg == nil || msg.Chat == nil || msg.From == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	if err := h.limiter.Allow(fmt.Sprintf("%d", msg.Chat.ID)); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.OK(c, map[string]string{"status": "throttled"})
		return
	}

	// Critical: process in goroutine, return 200 immediately to Telegram
	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			// Best-effort error notification to user
			_ = h.bot.SendMessage(msg.Chat.ID, errorMessage)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
		ChatID:   msg.Chat.ID,
	}

	if msg.SuccessfulPayment != nil {
		return h.deliverPurchase(ctx, sc, msg.SuccessfulPayment)
	}

	switch msg.Text {
	case "/start":
		return h.bot.SendMessage(msg.Chat.ID, startMessage)
	case "/help":
		return h.bot.SendMessage(msg.Chat.ID, helpMessage)
	}

	if err := h.bot.SendChatAction(msg.Chat.ID, "typing"); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send typing action: %v", err)
	}

	var (
		out chat.Output
		err error
	)
	switch {
	case msg.Voice != nil:
		out, err = h.handleVoice(ctx, sc, msg)
	case len(msg.Photo) > 0:
		out, err = h.handlePhoto(ctx, sc, msg)
	case msg.Text != "":
		out, err = h.uc.Chat(ctx, sc, chat.TextInput{Text: msg.Text})
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("chat turn for %s: %w", sc.UserID, err)
	}

	if err := h.bot.SendMessage(msg.Chat.ID, out.Reply); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	if out.Offer != nil {
		if err := h.sendOffer(ctx, msg.Chat.ID, out.Offer); err != nil {
			h.l.Errorf(ctx, "telegram handler: failed to send invoice for %s: %v", out.Offer.ID, err)
		}
	}
	return nil
}

// handleVoice downloads the voice note and hands it to the transcription path.
func (h *handler) handleVoice(ctx context.Context, sc model.Scope, msg *pkgTelegram.Message) (chat.Output, error) {
	file, err := h.bot.GetFile(msg.Voice.FileID)
	if err != nil {
		return chat.Output{}, fmt.Errorf("resolve voice file: %w", err)
	}
	audio, err := h.bot.DownloadFile(file.FilePath)
	if err != nil {
		return chat.Output{}, fmt.Errorf("download voice file: %w", err)
	}

	filename := file.FilePath
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		filename = filename[i+1:]
	}
	return h.uc.ChatVoice(ctx, sc, chat.VoiceInput{Filename: filename, Audio: audio})
}

// handlePhoto downloads the largest photo size and hands it to the vision
// path as a data URI.
func (h *handler) handlePhoto(ctx context.Context, sc model.Scope, msg *pkgTelegram.Message) (chat.Output, error) {
	// Telegram sorts sizes ascending; take the largest.
	photo := msg.Photo[len(msg.Photo)-1]

	file, err := h.bot.GetFile(photo.FileID)
	if err != nil {
		return chat.Output{}, fmt.Errorf("resolve photo file: %w", err)
	}
	raw, err := h.bot.DownloadFile(file.FilePath)
	if err != nil {
		return chat.Output{}, fmt.Errorf("download photo file: %w", err)
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	return h.uc.ChatPhoto(ctx, sc, chat.PhotoInput{ImageURL: dataURI, Caption: msg.Caption})
}

// sendOffer turns a catalog match into a Stars invoice.
func (h *handler) sendOffer(ctx context.Context, chatID int64, item *content.Item) error {
	description := item.Description
	if description == "" {
		description = item.Title
	}
	payload := invoicePayloadPrefix + item.ID
	return h.bot.SendStarsInvoice(chatID, item.Title, description, payload, item.PriceStars)
}

// answerPreCheckout approves a pending Stars payment when the item still
// exists and is active, and rejects it otherwise.
func (h *handler) answerPreCheckout(ctx context.Context, q *pkgTelegram.PreCheckoutQuery) {
	itemID, ok := strings.CutPrefix(q.InvoicePayload, invoicePayloadPrefix)
	if !ok {
		h.l.Warnf(ctx, "telegram handler: pre-checkout with unknown payload %q", q.InvoicePayload)
		_ = h.bot.AnswerPreCheckoutQuery(q.ID, false, "This offer is no longer available.")
		return
	}

	item, err := h.contentUC.Get(ctx, itemID)
	if err != nil || !item.Active {
		h.l.Warnf(ctx, "telegram handler: rejecting pre-checkout for %s: %v", itemID, err)
		_ = h.bot.AnswerPreCheckoutQuery(q.ID, false, "This offer is no longer available.")
		return
	}

	if err := h.bot.AnswerPreCheckoutQuery(q.ID, true, ""); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to answer pre-checkout %s: %v", q.ID, err)
	}
}

// deliverPurchase sends the bought media and records the purchase.
func (h *handler) deliverPurchase(ctx context.Context, sc model.Scope, payment *pkgTelegram.SuccessfulPayment) error {
	itemID, ok := strings.CutPrefix(payment.InvoicePayload, invoicePayloadPrefix)
	if !ok {
		return fmt.Errorf("successful payment with unknown payload %q", payment.InvoicePayload)
	}

	item, err := h.contentUC.Get(ctx, itemID)
	if err != nil {
		return fmt.Errorf("fetch purchased item %s: %w", itemID, err)
	}

	caption := "Here you go 😘"
	switch item.Type {
	case content.TypeVideo:
		err = h.bot.SendVideo(sc.ChatID, item.FileID, caption)
	default:
		err = h.bot.SendPhoto(sc.ChatID, item.FileID, caption)
	}
	if err != nil {
		return fmt.Errorf("deliver item %s: %w", itemID, err)
	}

	if err := h.contentUC.RecordPurchase(ctx, sc, itemID, payment.TelegramPaymentChargeID, payment.TotalAmount); err != nil {
		// The user already has the content; log and move on.
		h.l.Errorf(ctx, "telegram handler: failed to record purchase of %s by %s: %v", itemID, sc.UserID, err)
	}
	return nil
}
