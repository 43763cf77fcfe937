package model

import (
	"fmt"
	"strings"
)

// ActionKind enumerates the inline-button actions a user can trigger.
type ActionKind string

const (
	ActionChart    ActionKind = "chart"
	ActionAnalyze  ActionKind = "analyze"
	ActionAddWatch ActionKind = "add"
)

// Action is a decoded button payload: what to do, and for which symbol.
type Action struct {
	Kind   ActionKind
	Symbol string
}

// Payload encodes the action for a Telegram callback_data field.
func (a Action) Payload() string {
	return string(a.Kind) + ":" + a.Symbol
}

// ParseAction decodes a callback payload. The payload is decoded exactly once
// at the transport boundary; everything downstream switches on Kind.
func ParseAction(payload string) (Action, error) {
	kind, symbol, ok := strings.Cut(payload, ":")
	if !ok || symbol == "" {
		return Action{}, fmt.Errorf("malformed action payload %q", payload)
	}
	switch ActionKind(kind) {
	case ActionChart, ActionAnalyze, ActionAddWatch:
		return Action{Kind: ActionKind(kind), Symbol: symbol}, nil
	default:
		return Action{}, fmt.Errorf("unknown action kind %q", kind)
	}
}
