package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StarsCurrency is the ISO code Telegram uses for Stars payments.
const StarsCurrency = "XTR"

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	fileURL    string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		fileURL:    fmt.Sprintf("https://api.telegram.org/file/bot%s", token),
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the default Telegram API URLs for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
	b.fileURL = url + "/file"
}

// SetWebhook registers the webhook URL with Telegram.
func (b *Bot) SetWebhook(webhookURL string) error {
	return b.call("setWebhook", map[string]string{"url": webhookURL})
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	return b.call("sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
}

// SendChatAction shows a chat action such as "typing" or "upload_photo"
// while the reply is being generated.
func (b *Bot) SendChatAction(chatID int64, action string) error {
	return b.call("sendChatAction", sendChatActionRequest{ChatID: chatID, Action: action})
}

// SendPhoto sends a photo that already lives on Telegram's servers by file_id.
func (b *Bot) SendPhoto(chatID int64, fileID, caption string) error {
	return b.call("sendPhoto", sendMediaRequest{ChatID: chatID, Photo: fileID, Caption: caption})
}

// SendVideo sends a video that already lives on Telegram's servers by file_id.
func (b *Bot) SendVideo(chatID int64, fileID, caption string) error {
	return b.call("sendVideo", sendMediaRequest{ChatID: chatID, Video: fileID, Caption: caption})
}

// SendStarsInvoice sends a Telegram Stars invoice. The payload travels
// through the payment flow untouched and comes back in SuccessfulPayment.
func (b *Bot) SendStarsInvoice(chatID int64, title, description, payload string, stars int64) error {
	return b.call("sendInvoice", sendInvoiceRequest{
		ChatID:      chatID,
		Title:       title,
		Description: description,
		Payload:     payload,
		Currency:    StarsCurrency,
		Prices:      []LabeledPrice{{Label: title, Amount: stars}},
	})
}

// AnswerPreCheckoutQuery approves or rejects a pending payment. Telegram
// requires an answer within 10 seconds.
func (b *Bot) AnswerPreCheckoutQuery(queryID string, ok bool, errorMessage string) error {
	return b.call("answerPreCheckoutQuery", answerPreCheckoutRequest{
		PreCheckoutQueryID: queryID,
		OK:                 ok,
		ErrorMessage:       errorMessage,
	})
}

// GetFile resolves a file_id to a downloadable file path.
func (b *Bot) GetFile(fileID string) (*File, error) {
	url := fmt.Sprintf("%s/getFile", b.apiURL)
	body, _ := json.Marshal(map[string]string{"file_id": fileID})

	resp, err := b.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to call getFile: %w", err)
	}
	defer resp.Body.Close()

	var apiResp fileResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode getFile response: %w", err)
	}
	if !apiResp.OK || apiResp.Result == nil {
		return nil, fmt.Errorf("telegram getFile failed: %s", apiResp.Description)
	}
	return apiResp.Result, nil
}

// DownloadFile fetches the raw bytes of a file previously resolved with
// GetFile. Used for voice notes before transcription.
func (b *Bot) DownloadFile(filePath string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", b.fileURL, filePath)

	resp, err := b.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram file download failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// call posts a JSON payload to a Bot API method and checks the ok flag.
func (b *Bot) call(method string, payload any) error {
	url := fmt.Sprintf("%s/%s", b.apiURL, method)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	resp, err := b.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var apiResp APIResponse
		if jsonErr := json.Unmarshal(raw, &apiResp); jsonErr == nil && apiResp.Description != "" {
			return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
		}
		return fmt.Errorf("telegram %s failed with status %d: %s", method, resp.StatusCode, string(raw))
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}
	return nil
}
