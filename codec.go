package dson

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/envelope"
	"github.com/kyr0/dson/internal/monitoring"
	"github.com/kyr0/dson/internal/record"
	"github.com/kyr0/dson/internal/serialization"
)

// Codec serializes, clones and compares value graphs. A Codec is immutable
// once built and safe for concurrent use, provided its hooks and metrics
// collector are.
type Codec struct {
	maxDepth   int
	envelope   envelope.Codec
	lossyClone bool
	logger     *monitoring.StructuredLogger
	hooks      []monitoring.ObservabilityHook
	hook       monitoring.ObservabilityHook
}

// New builds a Codec. Without options it enforces DefaultMaxDepth, marshals
// to JSON, clones strictly and logs nothing.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{
		maxDepth: DefaultMaxDepth,
		envelope: envelope.JSONCodec{},
		logger:   monitoring.DiscardLogger(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.hook = monitoring.NewCompositeObservabilityHook(c.hooks...)
	return c, nil
}

func (c *Codec) MaxDepth() int { return c.maxDepth }

func (c *Codec) Envelope() Envelope { return c.envelope.Type() }

func (c *Codec) LossyClone() bool { return c.lossyClone }

// Stringify encodes v as JSON text. Unsupported values are dropped, so only
// a depth error can make it fail.
func (c *Codec) Stringify(v any) (string, error) {
	var text string
	err := c.observe(dsonerr.Stringify, EnvelopeJSON, func(ctx context.Context, meta map[string]any) error {
		var err error
		text, err = c.stringify(ctx, dsonerr.Stringify, v, meta)
		return err
	})
	return text, err
}

// Parse rebuilds the value encoded by Stringify.
func (c *Codec) Parse(text string) (any, error) {
	var v any
	err := c.observe(dsonerr.Parse, EnvelopeJSON, func(ctx context.Context, meta map[string]any) error {
		var err error
		v, err = c.parse(dsonerr.Parse, text, meta)
		return err
	})
	return v, err
}

// Clone deep-copies v in memory. Numbers keep their Go types. Unless the
// codec was built WithLossyClone, an unsupported value fails the call with
// ErrUnsupportedType.
func (c *Codec) Clone(v any) (any, error) {
	var out any
	err := c.observe(dsonerr.Clone, "", func(ctx context.Context, meta map[string]any) error {
		records, err := c.serialize(ctx, dsonerr.Clone, v, c.lossyClone, false, meta)
		if err != nil {
			return err
		}
		out, err = c.deserialize(dsonerr.Clone, records)
		return err
	})
	return out, err
}

// IsEqual reports whether a and b have the same canonical text. Each side is
// canonicalized by a Stringify/Parse round trip, so values differing only in
// unsupported fields are equal. Order of keys, elements and entries matters.
// Numbers compare as float64, so integers that differ only beyond 2^53
// (int64(1<<53) and int64(1<<53+1)) are equal; use *big.Int to tell them
// apart. Any error yields false.
func (c *Codec) IsEqual(a, b any) bool {
	equal := false
	_ = c.observe(dsonerr.Equal, EnvelopeJSON, func(ctx context.Context, meta map[string]any) error {
		left, err := c.canonical(ctx, a, meta)
		if err != nil {
			return err
		}
		right, err := c.canonical(ctx, b, meta)
		if err != nil {
			return err
		}
		equal = left == right
		meta["equal"] = equal
		return nil
	})
	return equal
}

func (c *Codec) canonical(ctx context.Context, v any, meta map[string]any) (string, error) {
	text, err := c.stringify(ctx, dsonerr.Equal, v, meta)
	if err != nil {
		return "", err
	}
	back, err := c.parse(dsonerr.Equal, text, meta)
	if err != nil {
		return "", err
	}
	return c.stringify(ctx, dsonerr.Equal, back, meta)
}

// Serialize flattens v into its record table without down-casting literals.
// It follows the codec's clone policy for unsupported values.
func (c *Codec) Serialize(v any) ([]Record, error) {
	var records []Record
	err := c.observe(dsonerr.Serialize, "", func(ctx context.Context, meta map[string]any) error {
		var err error
		records, err = c.serialize(ctx, dsonerr.Serialize, v, c.lossyClone, false, meta)
		return err
	})
	return records, err
}

// Deserialize rebuilds the value graph rooted at records[0].
func (c *Codec) Deserialize(records []Record) (any, error) {
	var v any
	err := c.observe(dsonerr.Deserialize, "", func(ctx context.Context, meta map[string]any) error {
		meta["records"] = len(records)
		var err error
		v, err = c.deserialize(dsonerr.Deserialize, records)
		return err
	})
	return v, err
}

// Marshal encodes v with the codec's envelope. Like Stringify it drops
// unsupported values.
func (c *Codec) Marshal(v any) ([]byte, error) {
	var data []byte
	err := c.observe(dsonerr.Marshal, c.envelope.Type(), func(ctx context.Context, meta map[string]any) error {
		records, err := c.serialize(ctx, dsonerr.Marshal, v, true, true, meta)
		if err != nil {
			return err
		}
		data, err = c.envelope.Encode(records)
		return err
	})
	return data, err
}

// Unmarshal rebuilds a value encoded by Marshal with the same envelope.
func (c *Codec) Unmarshal(data []byte) (any, error) {
	var v any
	err := c.observe(dsonerr.Unmarshal, c.envelope.Type(), func(ctx context.Context, meta map[string]any) error {
		records, err := c.envelope.Decode(data)
		if err != nil {
			return err
		}
		meta["records"] = len(records)
		v, err = c.deserialize(dsonerr.Unmarshal, records)
		return err
	})
	return v, err
}

func (c *Codec) stringify(ctx context.Context, op dsonerr.Operation, v any, meta map[string]any) (string, error) {
	records, err := c.serialize(ctx, op, v, true, true, meta)
	if err != nil {
		return "", err
	}
	data, err := envelope.JSONCodec{}.Encode(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Codec) parse(op dsonerr.Operation, text string, meta map[string]any) (any, error) {
	records, err := envelope.JSONCodec{}.Decode([]byte(text))
	if err != nil {
		return nil, err
	}
	meta["records"] = len(records)
	return c.deserialize(op, records)
}

func (c *Codec) serialize(ctx context.Context, op dsonerr.Operation, v any, lossy, json bool, meta map[string]any) ([]record.Record, error) {
	records, err := serialization.Serialize(v, serialization.Options{
		Lossy:     lossy,
		JSON:      json,
		MaxDepth:  c.maxDepth,
		Operation: op,
		OnDrop: func(path, typeName string) {
			c.hook.OnValueDropped(ctx, op.String(), path, typeName)
			c.logger.LogValueDropped(ctx, op.String(), path, typeName)
			dropped, _ := meta["dropped"].(int)
			meta["dropped"] = dropped + 1
		},
	})
	if err != nil {
		return nil, err
	}
	meta["records"] = len(records)
	return records, nil
}

func (c *Codec) deserialize(op dsonerr.Operation, records []record.Record) (any, error) {
	return serialization.Deserialize(records, serialization.Options{
		MaxDepth:  c.maxDepth,
		Operation: op,
	})
}

// observe runs fn as one operation: it assigns an operation id, notifies the
// hooks and logs the outcome. fn may add entries to meta.
func (c *Codec) observe(op dsonerr.Operation, env Envelope, fn func(ctx context.Context, meta map[string]any) error) error {
	ctx := monitoring.ContextWithOperationID(context.Background(), uuid.NewString())
	name := op.String()
	meta := map[string]any{"max_depth": c.maxDepth}
	if env != "" {
		meta["envelope"] = env.String()
	}

	start := time.Now()
	c.hook.OnOperationStart(ctx, name, meta)

	err := fn(ctx, meta)
	duration := time.Since(start)

	if err != nil {
		c.hook.OnError(ctx, name, err, meta)
	}
	c.hook.OnOperationComplete(ctx, name, duration, err, meta)
	c.logger.LogCodecOperation(ctx, name, duration, err, meta)
	return err
}
