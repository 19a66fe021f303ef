package kmap

import (
	"encoding/base64"
	"strings"
)

const (
	installOpen  = `<div class="kmap-cl-install">`
	installClose = `</div>`
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// quietFlags lists the boolean flags in payload order with the value the
// client assumes when the key is absent.
var quietFlags = []struct {
	name  string
	quiet bool
}{
	{PropertyFixed, false},
	{PropertyMap, true},
	{PropertyGenerator, true},
	{PropertyManual, false},
	{PropertySolve, false},
	{PropertySolved, false},
	{PropertyVerbose, true},
	{PropertyGenDontCareOption, true},
	{PropertyGenDontCare, false},
}

// Payload builds the ordered key set the client receives. Extra options come
// first, then size, then only the flags and values that differ from the
// client's own defaults. Values are emitted as they were set.
func (k *Kmap) Payload() *Payload {
	payload := newPayload()
	for pair := k.options.Oldest(); pair != nil; pair = pair.Next() {
		payload.set(pair.Key, cloneStored(pair.Value))
	}
	k.appendFields(payload)
	return payload
}

func (k *Kmap) appendFields(payload *Payload) {
	payload.set(PropertySize, cloneStored(k.field(PropertySize)))

	// A loose flag is reported only when it reads differently from the
	// client's assumption.
	for _, flag := range quietFlags {
		if value := k.field(flag.name); truthy(value) != flag.quiet {
			payload.set(flag.name, value)
		}
	}

	// The selectors travel together.
	if sel := k.field(PropertyResultSel); !isNull(sel) {
		payload.set(PropertyResultSel, sel)
		payload.set(PropertyExpressionSel, k.field(PropertyExpressionSel))
		payload.set(PropertySuccess, k.field(PropertySuccess))
	}

	if minterms := k.field(PropertyMinterms); hasItems(minterms) {
		payload.set(PropertyMinterms, cloneStored(minterms))
	}
	if dontcare := k.field(PropertyDontcare); hasItems(dontcare) {
		payload.set(PropertyDontcare, cloneStored(dontcare))
	}
	if labels := k.field(PropertyLabels); !isNull(labels) {
		payload.set(PropertyLabels, cloneStored(labels))
	}

	if endpoint, ok := k.api.Test(); ok && truthy(k.field(PropertyTest)) {
		payload.set(PayloadKeyTestAPI, endpoint)
		if name := k.field(PropertyName); !isNull(name) {
			payload.set(PropertyName, name)
		}
		if appTag := k.field(PropertyAppTag); !isNull(appTag) {
			payload.set(PropertyAppTag, appTag)
		}
	}
}

// Render returns the install container markup for the current state.
// Option values that cannot be encoded are dropped with a diagnostic.
func (k *Kmap) Render() string {
	data := k.Payload().encode(func(key string, err error) {
		k.cfg.diagnosticLogger().LogDiagnostic(Diagnostic{
			Component: component,
			Operation: "render",
			Property:  key,
			Err:       err,
		})
	})
	content := markupEscaper.Replace(string(data))
	if truthy(k.field(PropertyEncode)) {
		content = base64.StdEncoding.EncodeToString([]byte(content))
	}
	return installOpen + content + installClose
}
