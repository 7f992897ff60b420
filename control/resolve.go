package control

import "go-pattern/pattern"

// ResolveState resolves every VSignal-valued entry of live, querying it at
// the zero-width instant t and substituting the sampled Value, producing
// the concrete snapshot a tick hands to pattern.State.Controls (§4.E
// "resolve_state ... runs once per tick before event emission"). Entries
// that are not signals pass through unchanged.
func ResolveState(live map[string]Value, t pattern.Time) map[string]any {
	out := make(map[string]any, len(live))
	for k, v := range live {
		out[k] = resolveValue(v, t)
	}
	return out
}

func resolveValue(v Value, t pattern.Time) Value {
	if v.Kind != KSignal || v.Signal == nil {
		return v
	}
	events := v.Signal.QueryArc(pattern.Arc{Begin: t, End: t})
	if len(events) == 0 {
		return Value{}
	}
	return events[len(events)-1].Value
}
