package cgmes

// Record is one query result row keyed by property name.
type Record map[string]string

func (r Record) required(kind Kind, prop string) (string, error) {
	value, ok := r[prop]
	if !ok {
		return "", &MissingFieldError{Kind: kind, Property: prop}
	}
	return value, nil
}

func (r Record) optional(prop string) string {
	return r[prop]
}

// requiredAll extracts props in order, stopping at the first missing one.
func (r Record) requiredAll(kind Kind, props ...string) ([]string, error) {
	values := make([]string, len(props))
	for i, prop := range props {
		value, err := r.required(kind, prop)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}
