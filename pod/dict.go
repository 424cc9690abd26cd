package pod

import "sort"

// EncodeDict builds the Struct encoding used for string-to-string
// property dictionaries: Int n followed by 2n alternating Strings.
// Keys are sorted for a deterministic wire encoding.
func EncodeDict(m map[string]string) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := NewStructBuilder()
	b.Int(int32(len(keys)))
	for _, k := range keys {
		b.String(k)
		b.String(m[k])
	}
	return b.Build()
}

// DecodeDict reverses EncodeDict: reads the count then 2n alternating
// strings into a fresh map.
func DecodeDict(s Value) (map[string]string, error) {
	fr := NewFieldReader(s)
	n, err := fr.Int()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, n)
	for i := int32(0); i < n; i++ {
		k, err := fr.String()
		if err != nil {
			return nil, err
		}
		v, err := fr.String()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
