package kmap

// Recognized property names. Lookup is case-sensitive.
const (
	PropertySize              = "size"
	PropertyAppTag            = "appTag"
	PropertyName              = "name"
	PropertyTest              = "test"
	PropertyManual            = "manual"
	PropertySolve             = "solve"
	PropertySolved            = "solved"
	PropertyGenDontCareOption = "genDontCareOption"
	PropertyGenerator         = "generator"
	PropertyFixed             = "fixed"
	PropertyMap               = "map"
	PropertyVerbose           = "verbose"
	PropertyMinterms          = "minterms"
	PropertyDontcare          = "dontcare"
	PropertyGenDontCare       = "genDontCare"
	PropertyLabels            = "labels"
	PropertyResultSel         = "resultSel"
	PropertyExpressionSel     = "expressionSel"
	PropertySuccess           = "success"
	PropertyEncode            = "encode"

	// PropertyAPI is readable through Get but is not settable; endpoints are
	// configured on the holder returned by Kmap.API.
	PropertyAPI = "api"

	// PayloadKeyTestAPI carries the API test endpoint in the rendered payload.
	PayloadKeyTestAPI = "testAPI"
)

// PropertyType names the documented type of a recognized property. Set
// stores values as given; the type drives schemas and CLI parsing only.
type PropertyType string

const (
	TypeInteger            PropertyType = "integer"
	TypeBoolean            PropertyType = "boolean"
	TypeString             PropertyType = "string"
	TypeOptionalString     PropertyType = "string?"
	TypeIntegerList        PropertyType = "[]integer"
	TypeOptionalStringList PropertyType = "[]string?"
)

// IsString reports whether values of t are documented as text.
func (t PropertyType) IsString() bool {
	return t == TypeString || t == TypeOptionalString
}

// PropertyDescriptor describes one entry of the recognized property table.
type PropertyDescriptor struct {
	Name       string       `json:"name"`
	Aliases    []string     `json:"aliases,omitempty"`
	Type       PropertyType `json:"type"`
	Default    any          `json:"default"`
	PayloadKey string       `json:"payload_key,omitempty"`
	Readable   bool         `json:"readable"`
}

type property struct {
	name         string
	aliases      []string
	kind         PropertyType
	defaultValue any
	payloadKey   string
	readable     bool
}

// initial returns a fresh default so list defaults are never shared.
func (p property) initial() any {
	if p.kind == TypeIntegerList {
		return []int{}
	}
	return p.defaultValue
}

var propertyTable = []property{
	{name: PropertySize, kind: TypeInteger, defaultValue: 3, payloadKey: PropertySize},
	{name: PropertyAppTag, kind: TypeOptionalString, payloadKey: PropertyAppTag, readable: true},
	{name: PropertyName, kind: TypeOptionalString, payloadKey: PropertyName},
	{name: PropertyTest, kind: TypeBoolean, defaultValue: false},
	{name: PropertyManual, kind: TypeBoolean, defaultValue: false, payloadKey: PropertyManual},
	{name: PropertySolve, kind: TypeBoolean, defaultValue: false, payloadKey: PropertySolve},
	{name: PropertySolved, kind: TypeBoolean, defaultValue: false, payloadKey: PropertySolved},
	{name: PropertyGenDontCareOption, kind: TypeBoolean, defaultValue: true, payloadKey: PropertyGenDontCareOption},
	{name: PropertyGenerator, kind: TypeBoolean, defaultValue: true, payloadKey: PropertyGenerator},
	{name: PropertyFixed, kind: TypeBoolean, defaultValue: false, payloadKey: PropertyFixed},
	{name: PropertyMap, kind: TypeBoolean, defaultValue: true, payloadKey: PropertyMap},
	{name: PropertyVerbose, kind: TypeBoolean, defaultValue: true, payloadKey: PropertyVerbose},
	{name: PropertyMinterms, kind: TypeIntegerList, payloadKey: PropertyMinterms},
	{name: PropertyDontcare, aliases: []string{"dontcares"}, kind: TypeIntegerList, payloadKey: PropertyDontcare},
	{name: PropertyGenDontCare, kind: TypeBoolean, defaultValue: false, payloadKey: PropertyGenDontCare},
	{name: PropertyLabels, kind: TypeOptionalStringList, payloadKey: PropertyLabels},
	{name: PropertyResultSel, kind: TypeOptionalString, payloadKey: PropertyResultSel},
	{name: PropertyExpressionSel, kind: TypeOptionalString, payloadKey: PropertyExpressionSel},
	{name: PropertySuccess, kind: TypeString, defaultValue: "success", payloadKey: PropertySuccess},
	{name: PropertyEncode, kind: TypeBoolean, defaultValue: false},
}

var propertyIndex = buildPropertyIndex(propertyTable)

func buildPropertyIndex(table []property) map[string]*property {
	index := make(map[string]*property, len(table))
	for i := range table {
		p := &table[i]
		index[p.name] = p
		for _, alias := range p.aliases {
			index[alias] = p
		}
	}
	return index
}

func lookupProperty(name string) (*property, bool) {
	p, ok := propertyIndex[name]
	return p, ok
}

// Properties returns the recognized property table in declaration order.
func Properties() []PropertyDescriptor {
	out := make([]PropertyDescriptor, 0, len(propertyTable))
	for _, p := range propertyTable {
		out = append(out, PropertyDescriptor{
			Name:       p.name,
			Aliases:    append([]string(nil), p.aliases...),
			Type:       p.kind,
			Default:    p.initial(),
			PayloadKey: p.payloadKey,
			Readable:   p.readable,
		})
	}
	return out
}
