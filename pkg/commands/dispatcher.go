package commands

import (
	"context"
	"strings"
)

type Handler func(ctx context.Context, req Request) error

// Request is the transport-neutral view of a command message.
type Request struct {
	ChatID    int64
	SenderID  int64
	MessageID int
	FirstName string
	Text      string
}

// Args returns everything after the command token.
func (r Request) Args() string {
	parts := strings.SplitN(strings.TrimSpace(r.Text), " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type Result struct {
	Matched bool
	Command string
	Err     error
}

type Dispatcher struct {
	reg *Registry
}

type Dispatching interface {
	Dispatch(ctx context.Context, req Request) Result
}

type DispatchFunc func(ctx context.Context, req Request) Result

func (f DispatchFunc) Dispatch(ctx context.Context, req Request) Result {
	return f(ctx, req)
}

func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	cmdName, ok := ParseCommandName(req.Text)
	if !ok || d == nil || d.reg == nil {
		return Result{Matched: false}
	}

	def, found := d.reg.Lookup(cmdName)
	if !found || def.Handler == nil {
		return Result{Matched: false, Command: cmdName}
	}

	err := def.Handler(ctx, req)
	return Result{Matched: true, Command: def.Name, Err: err}
}

func firstToken(input string) string {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// ParseCommandName extracts "help" from "/help", "/help@picotts_bot" or
// "/help extra args". ok is false when input is not a slash command.
func ParseCommandName(input string) (string, bool) {
	token := firstToken(input)
	if token == "" || !strings.HasPrefix(token, "/") {
		return "", false
	}

	name := strings.TrimPrefix(token, "/")
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	return name, true
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
