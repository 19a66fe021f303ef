package kmap

import "github.com/goliatone/go-kmap/pkg/activity"

const apiComponent = "kmap.api"

// PropertyAPITest is the only property an API holder recognizes.
const PropertyAPITest = "test"

// API holds the endpoints the client script calls. Only the test results
// endpoint is supported.
type API struct {
	test  any
	owner *Kmap
}

// Set stores the test endpoint as given. Any other name is rejected without
// mutation.
func (a *API) Set(property string, value any) SetResult {
	if property != PropertyAPITest {
		return a.reject(rejected(apiComponent, property, value))
	}
	a.test = value
	if a.owner != nil {
		a.owner.emit(activity.BuildKmapAPISetEvent, property, value)
	}
	return applied(property)
}

// Get reads the test endpoint. Any other name yields a not-found result.
func (a *API) Get(property string) GetResult {
	if property == PropertyAPITest {
		return found(property, a.test)
	}
	result := notFound(apiComponent, property)
	a.logger().LogDiagnostic(diagnosticFrom(result.err))
	return result
}

// SetTest is shorthand for Set("test", endpoint).
func (a *API) SetTest(endpoint string) SetResult {
	return a.Set(PropertyAPITest, endpoint)
}

// Test returns the test endpoint when one is set.
func (a *API) Test() (any, bool) {
	if a == nil || isNull(a.test) {
		return nil, false
	}
	return a.test, true
}

func (a *API) reject(result SetResult) SetResult {
	a.logger().LogDiagnostic(diagnosticFrom(result.err))
	return result
}

func (a *API) logger() DiagnosticLogger {
	if a.owner == nil {
		return noopDiagnosticLogger{}
	}
	return a.owner.cfg.diagnosticLogger()
}
