package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/churn_chart/logging"
)

type fakeSender struct {
	sent      []tgbotapi.Chattable
	err       error
	noticeErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	if _, isText := c.(tgbotapi.MessageConfig); isText {
		return tgbotapi.Message{}, f.noticeErr
	}
	return tgbotapi.Message{}, f.err
}

func testLogger(buf *bytes.Buffer) *logging.Logger {
	return logging.New(logging.Config{Level: slog.LevelDebug, Component: "test", Output: buf})
}

func TestSendGraphVisualizationPhoto(t *testing.T) {
	f := &fakeSender{}
	err := sendGraphVisualization(f, testLogger(&bytes.Buffer{}), 42, []byte("png"), "churn.png", "caption")
	require.NoError(t, err)

	require.Len(t, f.sent, 1)
	photo, ok := f.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok, "got %T", f.sent[0])
	assert.Equal(t, int64(42), photo.ChatID)
	assert.Equal(t, "caption", photo.Caption)
	assert.Equal(t, "churn.png", photo.File.(tgbotapi.FileBytes).Name)
}

func TestSendGraphVisualizationLargeImageAsDocument(t *testing.T) {
	f := &fakeSender{}
	graph := bytes.Repeat([]byte{1}, maxSizePhoto+1)
	require.NoError(t, sendGraphVisualization(f, testLogger(&bytes.Buffer{}), 42, graph, "churn.png", "caption"))

	require.Len(t, f.sent, 1)
	doc, ok := f.sent[0].(tgbotapi.DocumentConfig)
	require.True(t, ok, "got %T", f.sent[0])
	assert.Equal(t, "caption", doc.Caption)
}

func TestSendGraphVisualizationFailure(t *testing.T) {
	f := &fakeSender{err: errors.New("flood control")}
	err := sendGraphVisualization(f, testLogger(&bytes.Buffer{}), 42, []byte("png"), "churn.png", "caption")
	assert.ErrorContains(t, err, "flood control")

	require.Len(t, f.sent, 2)
	notice, ok := f.sent[1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, notice.Text, "churn.png")
}

func TestSendGraphVisualizationNoticeFailureIsLogged(t *testing.T) {
	f := &fakeSender{err: errors.New("flood control"), noticeErr: errors.New("chat not found")}
	var logs bytes.Buffer
	err := sendGraphVisualization(f, testLogger(&logs), 42, []byte("png"), "churn.png", "caption")
	assert.ErrorContains(t, err, "flood control")

	require.Len(t, f.sent, 2)
	assert.Contains(t, logs.String(), "failure notice not sent")
	assert.Contains(t, logs.String(), "chat not found")
	assert.Contains(t, logs.String(), "chat_id=42")
}
