package copier

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"record-copier/internal/diagnostic"
	"record-copier/options"
	"record-copier/record"
)

type relationship struct {
	name string
	meta record.RelationshipMeta
}

// copyRelationships builds the values of rec's relationships that are set
// through SetProperties. Reference links made directly on target are not
// part of the result.
func (c *Copier) copyRelationships(
	ctx context.Context,
	rec record.Record,
	target record.Clone,
	deep bool,
	opts options.CopyOptions,
	s *Session,
) (map[string]any, error) {
	var declared []relationship
	c.schema.EachRelationship(rec, func(name string, meta record.RelationshipMeta) {
		if !opts.Ignores(name) {
			declared = append(declared, relationship{name: name, meta: meta})
		}
	})

	attrs := make(map[string]any, len(declared))
	for _, rel := range declared {
		if v, ok := opts.Overwritten(rel.name); ok {
			attrs[rel.name] = v
			continue
		}

		if !deep || opts.ByReference(rel.name) {
			if err := c.linkRelationship(ctx, rec, target, rel, attrs, s); err != nil {
				return nil, err
			}
			continue
		}

		value, err := c.copyRelated(ctx, rec, rel, deep, opts, s)
		if err != nil {
			return nil, err
		}
		attrs[rel.name] = value
	}

	return attrs, nil
}

// linkRelationship attaches the same related records to target.
//
// The store link adds the existing members to target's relationship state
// without reading them. When the store cannot link (target is not a managed
// record, or the store refuses), the related value is read and assigned as a
// plain property instead.
func (c *Copier) linkRelationship(
	ctx context.Context,
	rec record.Record,
	target record.Clone,
	rel relationship,
	attrs map[string]any,
	s *Session,
) error {
	linkErr := record.ErrLinkUnsupported
	if managed, ok := target.(record.Record); ok {
		linkErr = c.store.LinkExistingMembers(ctx, managed, rel.name, rel.meta.Kind, rec)
		if linkErr == nil {
			return nil
		}
	}

	c.logger.DebugContext(ctx, "relationship link fell back to value assignment",
		"record", record.Describe(rec), "relationship", rel.name, "kind", rel.meta.Kind, "error", linkErr)
	s.diags.AddInfo(diagnostic.CodeLinkFallback, linkErr.Error(), record.Describe(rec), rel.name)

	value, err := rec.Get(ctx, rel.name)
	if err != nil {
		return fmt.Errorf("%s: failed to read %q: %w", record.Describe(rec), rel.name, err)
	}
	attrs[rel.name] = value

	return nil
}

// copyRelated deep-copies the records of one relationship.
func (c *Copier) copyRelated(
	ctx context.Context,
	rec record.Record,
	rel relationship,
	deep bool,
	opts options.CopyOptions,
	s *Session,
) (any, error) {
	value, err := rec.Get(ctx, rel.name)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %q: %w", record.Describe(rec), rel.name, err)
	}

	sub, childDeep := opts.Relationship(rel.name, deep)
	if opts.Trace != nil {
		if sub == nil {
			sub = &options.CopyOptions{}
		}
		if sub.Trace == nil {
			sub.Trace = opts.Trace
		}
	}

	switch rel.meta.Kind {
	case record.KindToOne:
		related, ok := record.AsCopyable(value)
		if !ok {
			return value, nil
		}

		clone, err := c.copyRecord(ctx, related, childDeep, sub, s)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to copy %q: %w", record.Describe(rec), rel.name, err)
		}
		return clone, nil

	case record.KindToMany:
		members, ok := record.AsCopyableList(value)
		if !ok {
			return value, nil
		}

		clones, err := c.copyMembers(ctx, members, childDeep, sub, s)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to copy %q: %w", record.Describe(rec), rel.name, err)
		}
		return clones, nil

	default:
		return value, nil
	}
}

// copyMembers copies every member concurrently, keeping the source order.
func (c *Copier) copyMembers(
	ctx context.Context,
	members []record.Record,
	deep bool,
	sub *options.CopyOptions,
	s *Session,
) ([]record.Clone, error) {
	clones := make([]record.Clone, len(members))

	eg, egCtx := errgroup.WithContext(ctx)
	for idx, member := range members {
		eg.Go(func() error {
			clone, err := c.copyRecord(egCtx, member, deep, sub, s)
			if err != nil {
				return err
			}
			clones[idx] = clone
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return clones, nil
}
