package telegram

import (
	"strconv"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/sipeed/picotts/pkg/bot"
)

// toUpdate converts the update kinds the bot handles: text messages and
// callback queries. Everything else reports ok == false.
func toUpdate(update telego.Update) (bot.Update, *telego.User, bool) {
	if msg := update.Message; msg != nil {
		if msg.From == nil || msg.Text == "" {
			return bot.Update{}, nil, false
		}
		return bot.Update{
			ID:        update.UpdateID,
			Kind:      bot.KindMessage,
			ChatID:    msg.Chat.ID,
			OwnerID:   msg.From.ID,
			MessageID: msg.MessageID,
			FirstName: msg.From.FirstName,
			Username:  msg.From.Username,
			Text:      msg.Text,
		}, msg.From, true
	}

	if q := update.CallbackQuery; q != nil {
		u := bot.Update{
			ID:           update.UpdateID,
			Kind:         bot.KindCallback,
			ChatID:       q.From.ID,
			OwnerID:      q.From.ID,
			FirstName:    q.From.FirstName,
			Username:     q.From.Username,
			CallbackID:   q.ID,
			CallbackData: q.Data,
		}
		if q.Message != nil {
			u.ChatID = q.Message.GetChat().ID
			if q.Message.IsAccessible() {
				u.MessageID = q.Message.GetMessageID()
			}
		}
		return u, &q.From, true
	}

	return bot.Update{}, nil, false
}

// isAllowed matches a sender against allow entries of the forms "123",
// "alice", "@alice" and "123|alice". An empty list allows everyone.
func isAllowed(allowFrom []string, userID int64, username string) bool {
	if len(allowFrom) == 0 {
		return true
	}

	id := strconv.FormatInt(userID, 10)
	for _, entry := range allowFrom {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		entryID, entryName, compound := strings.Cut(entry, "|")
		if !compound && !isNumeric(entryID) {
			entryID, entryName = "", entryID
		}

		if entryID != "" && entryID == id {
			return true
		}
		entryName = strings.TrimPrefix(entryName, "@")
		if entryName != "" && username != "" && strings.EqualFold(entryName, username) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
