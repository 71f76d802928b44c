package chat

import "context"

// Handler processes one request line and returns the record to display.
// Implementations report progress through whatever status display they
// were constructed with and must return rather than block forever.
type Handler interface {
	ProcessRequest(ctx context.Context, request string) (*Result, error)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(ctx context.Context, request string) (*Result, error)

func (f HandlerFunc) ProcessRequest(ctx context.Context, request string) (*Result, error) {
	return f(ctx, request)
}
