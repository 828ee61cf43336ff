package copier

import (
	"context"
	"fmt"

	"record-copier/internal/common"
	"record-copier/options"
	"record-copier/primitive"
	"record-copier/record"
	"record-copier/transform"
)

// copyRecord clones one record into the session. Recursive calls share s.
func (c *Copier) copyRecord(
	ctx context.Context,
	rec record.Record,
	deep bool,
	callOpts *options.CopyOptions,
	s *Session,
) (record.Clone, error) {
	opts := c.resolveOptions(rec, callOpts)

	target, existed, err := s.claim(rec.Identity(), func() (allocation, error) {
		return c.allocate(ctx, rec, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to allocate clone: %w", record.Describe(rec), err)
	}
	if existed {
		return target, nil
	}

	attrs, err := c.copyAttributes(ctx, rec, deep, opts, s)
	if err != nil {
		return nil, err
	}

	relAttrs, err := c.copyRelationships(ctx, rec, target, deep, opts, s)
	if err != nil {
		return nil, err
	}

	final := make(map[string]any, len(opts.OtherAttributes)+len(attrs)+len(relAttrs)+len(opts.Overwrite))
	for _, name := range opts.OtherAttributes {
		value, err := rec.Get(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read %q: %w", record.Describe(rec), name, err)
		}
		final[name] = value
	}
	common.MergeInto(final, attrs)
	common.MergeInto(final, relAttrs)
	common.MergeInto(final, opts.Overwrite)

	if err := target.SetProperties(ctx, final); err != nil {
		return nil, fmt.Errorf("%s: failed to apply properties: %w", record.Describe(rec), err)
	}

	if opts.Trace != nil {
		opts.Trace.Record(rec.Identity(), options.Snapshot{
			Attributes:    attrs,
			Relationships: relAttrs,
			Final:         final,
		})
	}

	return target, nil
}

// copyAttributes builds the cloned values of rec's declared attributes.
func (c *Copier) copyAttributes(
	ctx context.Context,
	rec record.Record,
	deep bool,
	opts options.CopyOptions,
	s *Session,
) (map[string]any, error) {
	type attribute struct {
		name string
		meta record.AttributeMeta
	}

	var declared []attribute
	c.schema.EachAttribute(rec, func(name string, meta record.AttributeMeta) {
		declared = append(declared, attribute{name: name, meta: meta})
	})

	attrs := make(map[string]any, len(declared))
	for _, attr := range declared {
		if opts.Ignores(attr.name) {
			continue
		}

		if v, ok := opts.Overwritten(attr.name); ok {
			attrs[attr.name] = v
			continue
		}

		value, err := rec.Get(ctx, attr.name)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read %q: %w", record.Describe(rec), attr.name, err)
		}

		kind := primitive.FromTypeName(attr.meta.Type)
		if !kind.IsTyped() || kind.IsPrimitive() || opts.ByReference(attr.name) {
			attrs[attr.name] = value
			continue
		}

		cloned, err := c.cloneValue(ctx, rec, value, deep, attr.meta, s)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to copy %q: %w", record.Describe(rec), attr.name, err)
		}
		attrs[attr.name] = cloned
	}

	return attrs, nil
}

// cloneValue returns an independent copy of a non-primitive attribute value.
func (c *Copier) cloneValue(
	ctx context.Context,
	rec record.Record,
	value any,
	deep bool,
	meta record.AttributeMeta,
	s *Session,
) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case record.Copyable:
		return v.Copy(ctx, deep)
	default:
		t, err := s.transforms.Resolve(rec, meta.Type)
		if err != nil {
			return nil, err
		}
		return transform.Clone(t, v, meta.Options)
	}
}
