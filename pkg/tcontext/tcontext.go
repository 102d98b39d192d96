package tcontext

import "context"

// Reopen returns a context carrying the values of ctx which is not canceled when ctx is.
func Reopen(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
