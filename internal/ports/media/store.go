package media

import (
	"context"
	"io"
)

// Store is the outbound port for the external media host: it takes a binary
// blob and hands back a durable URL. Callers bound the call with the context.
type Store interface {
	Upload(ctx context.Context, folder, filename string, body io.Reader) (string, error)
}
