// Package acronym groups the acronym bot: the storage contract and its
// SQLite and in-memory implementations, the chat command layer, the Telegram
// transport, and the service wiring.
package acronym
