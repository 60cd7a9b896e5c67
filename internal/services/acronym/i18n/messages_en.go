// Package i18n registers the English reply copy for the acronym bot.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Errors
	message.SetString(lang, "reply.error", "❌ *Error*: %s")
	message.SetString(lang, "error.bad_command", "Invalid command format. Expected at least a key.")
	message.SetString(lang, "error.need_values", "Invalid command format. Expected a key and values.")
	message.SetString(lang, "error.unknown_command", "Unknown command. Send `help` to see available commands.")
	message.SetString(lang, "error.internal", "An unexpected error occurred. Please try again later.")
	message.SetString(lang, "error.key_not_found", "Values not found for key `%s`.")
	message.SetString(lang, "error.key_not_found_suggest", "Values not found for key `%s`. Did you mean one of these?\n\n%s")
	message.SetString(lang, "error.values_not_present", "Failed to remove values for key `%s`. Are you sure they all exist?")
	message.SetString(lang, "error.delete_missing", "Failed to delete key `%s`. Are you sure it exists?")
	message.SetString(lang, "error.no_keys", "No keys found.")
	message.SetString(lang, "error.no_matches", "No keys or values match `%s`.")

	// Success
	message.SetString(lang, "reply.added", "✅ *Values added*\n\n*Key*\n\n`%s`\n\n*Values*\n\n%s")
	message.SetString(lang, "reply.get", "✅ *%s*\n\n%s")
	message.SetString(lang, "reply.removed", "✅ *Values removed*\n\n*Key*\n\n`%s`")
	message.SetString(lang, "reply.deleted", "✅ *Key deleted*\n\n`%s`")
	message.SetString(lang, "reply.keys", "✅ *Keys*\n\n%s")
	message.SetString(lang, "reply.matches", "✅ *Matches for* `%s`\n\n%s")

	// Usage
	message.SetString(lang, "reply.usage",
		"*🤖 Acrobot - avoid acronym acrobatics!*\n\n"+
			"1. *Add a key with values*\n"+
			"   - `add <key> <val1>, <val2>, ...`\n"+
			"   - `add \"key with spaces\" <val1>, <val2>, ...`\n\n"+
			"2. *Retrieve values for a key*\n"+
			"   - `get <key>`\n\n"+
			"3. *Remove specific values*\n"+
			"   - `remove <key> <val1>, <val2>, ...`\n\n"+
			"4. *Delete a key*\n"+
			"   - `delete <key>`\n\n"+
			"5. *List a sample of keys*\n"+
			"   - `list`\n\n"+
			"6. *Search keys and values*\n"+
			"   - `search <term>`\n")
}
