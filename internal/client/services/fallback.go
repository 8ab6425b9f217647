// Package services routes every directory operation to the remote API and,
// when the API is unavailable, replays the same operation on the local
// store. Only client.ErrUnavailable triggers the switch; every other error
// is returned as is. There is one fallback hop and no retry loop.
package services

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// Source names the backend that answered a call.
type Source int32

const (
	SourceNone Source = iota
	SourceRemote
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	default:
		return "none"
	}
}

// Dispatcher holds what the fallback hop needs: a logger and a record of
// the backend that served the latest call.
type Dispatcher struct {
	log  logging.Logger
	last atomic.Int32
}

func NewDispatcher(log logging.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// LastSource reports which backend answered the most recent call.
func (d *Dispatcher) LastSource() Source {
	return Source(d.last.Load())
}

// dispatch runs remote and, only if it fails with client.ErrUnavailable,
// runs local instead.
func dispatch[T any](ctx context.Context, d *Dispatcher, op string,
	remote func(context.Context) (T, error),
	local func(context.Context) (T, error),
) (T, error) {
	res, err := remote(ctx)
	if err == nil {
		d.last.Store(int32(SourceRemote))
		return res, nil
	}
	if !client.IsUnavailable(err) {
		d.last.Store(int32(SourceRemote))
		return res, err
	}

	d.log.Warn(ctx, "remote unavailable, using local store", "op", op, "error", err)
	d.last.Store(int32(SourceLocal))
	return local(ctx)
}

// dispatchErr is dispatch for operations without a result.
func dispatchErr(ctx context.Context, d *Dispatcher, op string,
	remote func(context.Context) error,
	local func(context.Context) error,
) error {
	_, err := dispatch(ctx, d, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, remote(ctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, local(ctx) },
	)
	return err
}
