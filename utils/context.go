package utils

import (
	"context"

	"github.com/teivah/onecontext"
)

// CombinedContexts returns a context that is done as soon as any of the given contexts is done.
func CombinedContexts(ctx context.Context, ctxs ...context.Context) (context.Context, context.CancelFunc) {
	return onecontext.Merge(ctx, ctxs...)
}
