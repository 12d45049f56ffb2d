package main

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/churn_chart/logging"
)

// Telegram compresses photos and rejects large ones; bigger images go out as documents.
const maxSizePhoto = 150000

const telegramTimeout = 30 * time.Second

// chartSender is the part of *tgbotapi.BotAPI used to deliver charts.
type chartSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// newChartSender is replaced in tests.
var newChartSender = func(token string) (chartSender, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, &http.Client{Timeout: telegramTimeout})
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return api, nil
}

// sendGraphVisualization posts a rendered chart to the chat, as a photo when small
// enough and as a document otherwise. On failure the chat is told the chart could not be sent.
func sendGraphVisualization(api chartSender, logger *logging.Logger, chatID int64, graph []byte, fileName, caption string) error {
	file := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	var msg tgbotapi.Chattable
	if len(graph) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, file)
		photo.Caption = caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, file)
		doc.Caption = caption
		msg = doc
	}

	if _, err := api.Send(msg); err != nil {
		notice := tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not send chart %s: %v", fileName, err))
		if _, noticeErr := api.Send(notice); noticeErr != nil {
			logger.Warn("failure notice not sent", "chat_id", chatID, "error", noticeErr)
		}
		return fmt.Errorf("send chart %s: %w", fileName, err)
	}
	return nil
}
