package telegram

import (
	"bytes"
	"context"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/sipeed/picotts/pkg/bot"
	"github.com/sipeed/picotts/pkg/picker"
)

const voiceFileName = "voice.mp3"

func (c *Channel) SendText(ctx context.Context, reply bot.Reply) error {
	msg := tu.Message(tu.ID(reply.ChatID), reply.Text)
	if reply.HTML {
		msg.ParseMode = telego.ModeHTML
	}
	msg.ReplyParameters = replyTo(reply.ReplyTo)
	if len(reply.Keyboard) > 0 {
		msg.ReplyMarkup = inlineKeyboard(reply.Keyboard)
	}

	_, err := c.bot.SendMessage(ctx, msg)
	return err
}

func (c *Channel) EditText(ctx context.Context, chatID int64, messageID int, text string, html bool) error {
	edit := tu.EditMessageText(tu.ID(chatID), messageID, text)
	if html {
		edit.ParseMode = telego.ModeHTML
	}
	_, err := c.bot.EditMessageText(ctx, edit)
	return err
}

func (c *Channel) SendVoice(ctx context.Context, chatID int64, replyToID int, audio []byte, caption string) error {
	_, err := c.bot.SendVoice(ctx, &telego.SendVoiceParams{
		ChatID:          tu.ID(chatID),
		Voice:           tu.FileFromReader(bytes.NewReader(audio), voiceFileName),
		Caption:         caption,
		ReplyParameters: replyTo(replyToID),
	})
	return err
}

func (c *Channel) SendChatAction(ctx context.Context, chatID int64, action bot.ChatAction) error {
	tgAction := telego.ChatActionTyping
	if action == bot.ActionRecordVoice {
		tgAction = telego.ChatActionRecordVoice
	}
	return c.bot.SendChatAction(ctx, tu.ChatAction(tu.ID(chatID), tgAction))
}

func (c *Channel) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.bot.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
}

func replyTo(messageID int) *telego.ReplyParameters {
	if messageID == 0 {
		return nil
	}
	return &telego.ReplyParameters{
		MessageID:                messageID,
		AllowSendingWithoutReply: true,
	}
}

func inlineKeyboard(rows [][]picker.Button) *telego.InlineKeyboardMarkup {
	tgRows := make([][]telego.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telego.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
		}
		tgRows = append(tgRows, tu.InlineKeyboardRow(buttons...))
	}
	return tu.InlineKeyboard(tgRows...)
}
