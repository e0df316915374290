package dson

import (
	"context"

	"github.com/kyr0/dson/internal/batch"
)

type (
	// BatchOptions configures StringifyAll and CloneAll.
	BatchOptions = batch.Options
	// BatchResult summarises a batch call.
	BatchResult = batch.Result
	// BatchItemError is the failure of one value in a batch.
	BatchItemError = batch.ItemError
)

// StringifyAll stringifies every value concurrently. texts[i] is empty for
// values that failed or were not reached; their errors are in the result.
func (c *Codec) StringifyAll(ctx context.Context, values []any, opts *BatchOptions) ([]string, *BatchResult, error) {
	texts := make([]string, len(values))
	result, err := batch.Run(ctx, len(values), func(ctx context.Context, i int) error {
		text, err := c.Stringify(values[i])
		texts[i] = text
		return err
	}, opts)
	return texts, result, err
}

// CloneAll clones every value concurrently under the codec's clone policy.
func (c *Codec) CloneAll(ctx context.Context, values []any, opts *BatchOptions) ([]any, *BatchResult, error) {
	out := make([]any, len(values))
	result, err := batch.Run(ctx, len(values), func(ctx context.Context, i int) error {
		v, err := c.Clone(values[i])
		out[i] = v
		return err
	}, opts)
	return out, result, err
}
