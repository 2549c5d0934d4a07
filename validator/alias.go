package validator

import (
	"fmt"

	"github.com/foglayer/fogpack/errs"
)

// Table is a schema's `types` map: named validators that Alias nodes
// refer to, allowing recursive and shared validator definitions
// (spec.md §4.2).
type Table map[string]*Validator

// Resolve walks v, replacing every KindAlias node's resolution cache
// with its target from table and checking that the only cycles present
// pass through a "boxing" kind — Array (via Items/ExtraItems/Contains),
// Map (via its field validators), or Hash (via Link) — so a resolver
// never has to fully unfold an infinite tree to validate a single value.
// It returns errs.ErrAliasMissing for an undefined name and
// errs.ErrAliasCycle for a cycle that does not pass through a boxing
// kind.
func (table Table) Resolve() error {
	for name, v := range table {
		if err := resolveNode(v, table, map[string]int{}); err != nil {
			return fmt.Errorf("validator: resolving %q: %w", name, err)
		}
	}

	return nil
}

// visiting holds the alias names entered on the current path since the
// last boxing edge; meeting one of them again is a non-boxed cycle.
func resolveNode(v *Validator, table Table, visiting map[string]int) error {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindAlias:
		if _, seen := visiting[v.AliasName]; seen {
			return fmt.Errorf("%w: alias %q", errs.ErrAliasCycle, v.AliasName)
		}

		target, ok := table[v.AliasName]
		if !ok {
			return fmt.Errorf("%w: %q", errs.ErrAliasMissing, v.AliasName)
		}
		if v.resolved != nil {
			// Already resolved and walked: reached again through a boxing edge.
			return nil
		}

		visiting[v.AliasName] = len(visiting)
		v.resolved = target
		err := resolveNode(target, table, visiting)
		delete(visiting, v.AliasName)

		return err

	case KindMulti:
		for _, opt := range v.Options {
			if err := resolveNode(opt, table, visiting); err != nil {
				return err
			}
		}

		return nil

	case KindArray:
		if v.Array == nil {
			return nil
		}
		// Array items/extra_items/contains are boxing positions: a cycle
		// reachable only through them is legal, because validating one
		// array element never requires the parent array's own
		// validator again within the same recursion frame. Reset the
		// visiting set for everything reached through a boxing edge.
		for _, item := range v.Array.Items {
			if err := resolveNode(item, table, map[string]int{}); err != nil {
				return err
			}
		}
		if v.Array.ExtraItems != nil {
			if err := resolveNode(v.Array.ExtraItems, table, map[string]int{}); err != nil {
				return err
			}
		}
		for _, c := range v.Array.Contains {
			if err := resolveNode(c, table, map[string]int{}); err != nil {
				return err
			}
		}

		return nil

	case KindMap:
		if v.Map == nil {
			return nil
		}
		for _, field := range v.Map.Req {
			if err := resolveNode(field, table, map[string]int{}); err != nil {
				return err
			}
		}
		for _, field := range v.Map.Opt {
			if err := resolveNode(field, table, map[string]int{}); err != nil {
				return err
			}
		}
		if v.Map.FieldType != nil {
			if err := resolveNode(v.Map.FieldType, table, map[string]int{}); err != nil {
				return err
			}
		}

		return nil

	case KindHash:
		if v.Hash == nil || v.Hash.Link == nil {
			return nil
		}

		return resolveNode(v.Hash.Link, table, map[string]int{})

	default:
		return nil
	}
}

// Resolved returns v's alias target, fully chased through any alias
// chain. Resolve must have been called on the owning table first.
func (v *Validator) Resolved() *Validator {
	cur := v
	for cur.Kind == KindAlias && cur.resolved != nil {
		cur = cur.resolved
	}

	return cur
}
