package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kunalva/finbot/pkg/api"
)

// categoryPayloadPrefix tags callback payloads carrying a category index.
const categoryPayloadPrefix = "cat_"

// categoryKeyboard builds the inline category picker: two numbered buttons
// per row, each carrying its index into api.Categories as payload.
func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(api.Categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{categoryButton(i)}
		if i+1 < len(api.Categories) {
			row = append(row, categoryButton(i+1))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoryButton(index int) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d. %s", index+1, api.Categories[index]),
		fmt.Sprintf("%s%d", categoryPayloadPrefix, index),
	)
}
