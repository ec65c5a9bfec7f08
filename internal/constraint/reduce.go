package constraint

// Reduce algebraically simplifies a constraint to a semantically
// equivalent, smaller-or-equal tree. It never mutates its argument and
// is idempotent: Reduce(Reduce(c)) equals Reduce(c).
//
// Rules:
//   - And: a literal false child collapses the whole conjunction to
//     false; literal true children are dropped; remaining children are
//     reduced and deduplicated by canonical equality. An empty
//     conjunction reduces to true (the identity of And), a single
//     survivor is returned unwrapped.
//   - Or: symmetric, with true short-circuiting and false dropped. An
//     empty disjunction reduces to false.
//   - Not: literals invert; otherwise the child is reduced and
//     re-wrapped.
//   - Xor: children are reduced individually and re-wrapped.
//   - Comparison and Boolean are fixed points.
//
// The empty-combinator targets (true for And, false for Or) are the
// identity elements of each combinator.
func Reduce(c Constraint) Constraint {
	switch v := c.(type) {
	case Boolean:
		return v
	case Comparison:
		return v
	case Not:
		return reduceNot(v)
	case And:
		return reduceAnd(v)
	case Or:
		return reduceOr(v)
	case Xor:
		kids := make([]Constraint, len(v.children))
		for i, k := range v.children {
			kids[i] = Reduce(k)
		}
		return NewXor(kids...)
	default:
		panic("constraint: unknown node kind")
	}
}

func reduceNot(n Not) Constraint {
	switch child := Reduce(n.child).(type) {
	case Boolean:
		return Boolean(!bool(child))
	default:
		return NewNot(child)
	}
}

func reduceAnd(a And) Constraint {
	kept := make([]Constraint, 0, len(a.children))
	seen := make(map[string]struct{}, len(a.children))
	for _, child := range a.children {
		r := Reduce(child)
		if b, ok := r.(Boolean); ok {
			if !bool(b) {
				return False
			}
			continue // true is the identity, drop it
		}
		key := Canonical(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	switch len(kept) {
	case 0:
		return True
	case 1:
		return kept[0]
	default:
		return NewAnd(kept...)
	}
}

func reduceOr(o Or) Constraint {
	kept := make([]Constraint, 0, len(o.children))
	seen := make(map[string]struct{}, len(o.children))
	for _, child := range o.children {
		r := Reduce(child)
		if b, ok := r.(Boolean); ok {
			if bool(b) {
				return True
			}
			continue // false is the identity, drop it
		}
		key := Canonical(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	switch len(kept) {
	case 0:
		return False
	case 1:
		return kept[0]
	default:
		return NewOr(kept...)
	}
}
