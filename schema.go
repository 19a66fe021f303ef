package kmap

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened property descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents OpenAPI-compatible JSON Schema documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Document must be JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator describes the recognized properties in some schema format.
type SchemaGenerator interface {
	Generate(properties []PropertyDescriptor) (SchemaDocument, error)
}

// DefaultSchemaGenerator returns the built-in descriptor generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(properties []PropertyDescriptor) (SchemaDocument, error) {
	if properties == nil {
		properties = []PropertyDescriptor{}
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: properties,
	}, nil
}

// Schema describes the recognized properties with the configured generator.
func (k *Kmap) Schema() (SchemaDocument, error) {
	generator := k.cfg.schemaGenerator
	if generator == nil {
		generator = DefaultSchemaGenerator()
	}
	return generator.Generate(Properties())
}
