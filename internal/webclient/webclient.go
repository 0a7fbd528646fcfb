package webclient

import (
	"context"
)

// WebClient executes outbound HTTP requests for components that talk to
// remote services (the prediction backend).
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
