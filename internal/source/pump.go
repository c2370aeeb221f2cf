package source

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// Pump reads src until it ends, ctx is canceled or a non-recoverable error
// occurs. Malformed records are logged and skipped. A finished stream
// returns nil.
func Pump(ctx context.Context, src Source, store *Store, log *zap.Logger) error {
	for {
		b, err := src.Read(ctx)
		switch {
		case err == nil:
			store.Update(b)
		case errors.Is(err, io.EOF):
			log.Info("source exhausted")
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, ErrMalformed):
			log.Warn("skipping record", zap.Error(err))
		default:
			log.Error("source read failed", zap.Error(err))
			return err
		}
	}
}
