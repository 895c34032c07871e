package ledger

import "iter"

// Collect drains a lazy entry sequence into a slice, stopping at the first error.
func Collect(seq iter.Seq2[*Entry, error]) ([]*Entry, error) {
	var out []*Entry
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Fold sums the effects of entries.
func Fold(entries []*Entry) Effect {
	var total Effect
	for _, e := range entries {
		total = total.Add(e.effect)
	}
	return total
}

// OpenDelivery finds the latest DELIVERED entry of one order's history that no
// later reversal references, and the net effect posted from it onwards
// (the delivery plus any corrections). ok is false when the order has no open
// delivery. entries must be in append order.
func OpenDelivery(entries []*Entry) (delivery *Entry, net Effect, ok bool) {
	idx := -1
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].action == Delivered {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, Effect{}, false
	}

	delivery = entries[idx]
	for _, e := range entries[idx+1:] {
		if e.action.IsReversal() && e.reverses != nil && *e.reverses == delivery.id {
			return nil, Effect{}, false
		}
	}

	return delivery, Fold(entries[idx:]), true
}
