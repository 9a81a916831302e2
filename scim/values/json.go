package values

import "encoding/json"

func marshalQuoted(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}

func unmarshalQuoted(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}

	return s, nil
}

func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
