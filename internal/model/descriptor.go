package model

// DescriptorType is the closed set of code-generation kinds a descriptor
// file can declare. Classification is total over this set: a file that does
// not match any kind is rejected with ErrUnknownDescriptorType rather than
// falling through on a naming convention.
type DescriptorType int

const (
	// TypeUnknown is the zero value and never a valid inferred type.
	TypeUnknown DescriptorType = iota
	TypeComponent
	TypePort
	TypeSerializable
	TypeEnum
	TypeArray
	TypeTopology
)

// descriptorTags maps each kind to the tag embedded in descriptor and
// artifact file names (e.g. "FooComponentAi.xml" -> "FooComponentAc.hpp").
var descriptorTags = map[DescriptorType]string{
	TypeComponent:    "Component",
	TypePort:         "Port",
	TypeSerializable: "Serializable",
	TypeEnum:         "Enum",
	TypeArray:        "Array",
	TypeTopology:     "Topology",
}

// Tag returns the name fragment for the type, or "" for TypeUnknown.
func (t DescriptorType) Tag() string {
	return descriptorTags[t]
}

// String implements fmt.Stringer.
func (t DescriptorType) String() string {
	if tag, ok := descriptorTags[t]; ok {
		return tag
	}
	return "Unknown"
}

// DescriptorTypes returns every valid type in a fixed order. The order
// matters to classification: longer tags must be tested before any tag that
// is a suffix of them, and keeping one canonical order makes inference
// deterministic.
func DescriptorTypes() []DescriptorType {
	return []DescriptorType{
		TypeComponent,
		TypeSerializable,
		TypeTopology,
		TypePort,
		TypeEnum,
		TypeArray,
	}
}

// Descriptor is a classified code-generation input file.
type Descriptor struct {
	// Path is the descriptor file location on disk.
	Path string
	// Type is the inferred code-generation kind. Never TypeUnknown for a
	// Descriptor produced by classify.Describe.
	Type DescriptorType
	// BaseName is the descriptor file name with the type tag and the
	// descriptor suffix stripped ("FooComponentAi.xml" -> "Foo").
	BaseName string
}
