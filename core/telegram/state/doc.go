// Package state provides conversation session storage for Telegram bots.
// Sessions are keyed by chat and hold an FSM step plus scratch data; the
// storage backend is either in-process memory or Redis.
package state
