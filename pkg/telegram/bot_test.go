package telegram_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"companion-bot/pkg/telegram"
)

func TestBot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasSuffix(path, "/setWebhook") {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["url"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))
			return
		}

		if strings.HasSuffix(path, "/sendMessage") {
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			text := req["text"].(string)

			if text == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid text"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true}`))
			return
		}

		if strings.HasSuffix(path, "/sendInvoice") {
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			if req["currency"] != "XTR" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "stars invoices must use XTR"}`))
				return
			}
			prices := req["prices"].([]interface{})
			if len(prices) != 1 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "expected one price line"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true}`))
			return
		}

		if strings.HasSuffix(path, "/answerPreCheckoutQuery") {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true}`))
			return
		}

		if strings.HasSuffix(path, "/sendPhoto") || strings.HasSuffix(path, "/sendVideo") ||
			strings.HasSuffix(path, "/sendChatAction") {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true}`))
			return
		}

		if strings.HasSuffix(path, "/getFile") {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["file_id"] == "missing" {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"ok": false, "description": "file not found"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true, "result": {"file_id": "voice123", "file_path": "voice/file_1.oga"}}`))
			return
		}

		if strings.Contains(path, "/file/") {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("audio-bytes"))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL) // Route calls to test server instead of api.telegram.org

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook("https://example.com/webhook"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook("cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(12345, "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		err := bot.SendMessage(12345, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid text") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SendStarsInvoice Uses XTR", func(t *testing.T) {
		if err := bot.SendStarsInvoice(12345, "Beach photo", "Exclusive content", "content:abc", 150); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("AnswerPreCheckoutQuery Success", func(t *testing.T) {
		if err := bot.AnswerPreCheckoutQuery("q1", true, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendPhoto And SendVideo Success", func(t *testing.T) {
		if err := bot.SendPhoto(12345, "photo-file-id", "caption"); err != nil {
			t.Fatalf("unexpected sendPhoto error: %v", err)
		}
		if err := bot.SendVideo(12345, "video-file-id", ""); err != nil {
			t.Fatalf("unexpected sendVideo error: %v", err)
		}
	})

	t.Run("SendChatAction Success", func(t *testing.T) {
		if err := bot.SendChatAction(12345, "typing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("GetFile Success", func(t *testing.T) {
		f, err := bot.GetFile("voice123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.FilePath != "voice/file_1.oga" {
			t.Errorf("unexpected file path: %q", f.FilePath)
		}
	})

	t.Run("GetFile Not Found", func(t *testing.T) {
		_, err := bot.GetFile("missing")
		if err == nil || !strings.Contains(err.Error(), "file not found") {
			t.Fatalf("expected not found error, got: %v", err)
		}
	})

	t.Run("DownloadFile Success", func(t *testing.T) {
		data, err := bot.DownloadFile("voice/file_1.oga")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "audio-bytes" {
			t.Errorf("unexpected file contents: %q", string(data))
		}
	})
}
