package history

import (
	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

// DefaultWindow is the number of exchanges replayed to the language model.
const DefaultWindow = 10

// ToTurns expands each exchange into a user turn followed by a model turn,
// keeping the order of the input.
func ToTurns(exchanges []contractx.ChatExchange) []contractx.Turn {
	turns := make([]contractx.Turn, 0, len(exchanges)*2)
	for _, ex := range exchanges {
		turns = append(turns,
			contractx.Turn{Role: contractx.RoleUser, Text: ex.UserMessage},
			contractx.Turn{Role: contractx.RoleModel, Text: ex.BotResponse},
		)
	}
	return turns
}

// Chronological reverses a newest-first slice into a new oldest-first slice.
func Chronological(newestFirst []contractx.ChatExchange) []contractx.ChatExchange {
	out := make([]contractx.ChatExchange, len(newestFirst))
	for i, ex := range newestFirst {
		out[len(newestFirst)-1-i] = ex
	}
	return out
}
