package kmap

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrMalformedMarkup reports markup that is not a kmap install container.
var ErrMalformedMarkup = errors.New("kmap: malformed install markup")

// Payload is the insertion-ordered key set handed to the client script.
type Payload struct {
	entries *orderedmap.OrderedMap[string, any]
}

func newPayload() *Payload {
	return &Payload{entries: orderedmap.New[string, any]()}
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (any, bool) {
	if p == nil || p.entries == nil {
		return nil, false
	}
	return p.entries.Get(key)
}

// Has reports whether key is present.
func (p *Payload) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the payload keys in insertion order.
func (p *Payload) Keys() []string {
	if p == nil || p.entries == nil {
		return nil
	}
	keys := make([]string, 0, p.entries.Len())
	for pair := p.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of keys.
func (p *Payload) Len() int {
	if p == nil || p.entries == nil {
		return 0
	}
	return p.entries.Len()
}

func (p *Payload) set(key string, value any) {
	p.entries.Set(key, value)
}

// MarshalJSON encodes the payload in key order, failing on the first value
// that cannot be encoded.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var failed error
	data := p.encode(func(key string, err error) {
		if failed == nil {
			failed = fmt.Errorf("kmap: encode payload key %q: %w", key, err)
		}
	})
	if failed != nil {
		return nil, failed
	}
	return data, nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (p *Payload) UnmarshalJSON(data []byte) error {
	entries := orderedmap.New[string, any]()
	if err := entries.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("kmap: decode payload: %w", err)
	}
	p.entries = entries
	return nil
}

// encode writes the payload as compact JSON. Entries whose value cannot be
// encoded are skipped and reported to onError.
func (p *Payload) encode(onError func(key string, err error)) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if p != nil && p.entries != nil {
		for pair := p.entries.Oldest(); pair != nil; pair = pair.Next() {
			value, err := marshalCompact(pair.Value)
			if err != nil {
				if onError != nil {
					onError(pair.Key, err)
				}
				continue
			}
			key, _ := marshalCompact(pair.Key)
			if !first {
				buf.WriteByte(',')
			}
			first = false
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// marshalCompact leaves <, > and & alone; markup escaping happens once over
// the whole document.
func marshalCompact(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodePayload reverses Render: it strips the install container, undoes the
// optional base64 layer and the entity escaping, then decodes the JSON.
func DecodePayload(markup string, encoded bool) (*Payload, error) {
	markup = strings.TrimSpace(markup)
	if !strings.HasPrefix(markup, installOpen) || !strings.HasSuffix(markup, installClose) {
		return nil, ErrMalformedMarkup
	}
	body := strings.TrimSuffix(strings.TrimPrefix(markup, installOpen), installClose)
	if encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("kmap: decode base64 payload: %w", err)
		}
		body = string(raw)
	}
	payload := &Payload{}
	if err := payload.UnmarshalJSON([]byte(html.UnescapeString(body))); err != nil {
		return nil, err
	}
	return payload, nil
}
