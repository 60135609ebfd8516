package scim

type AuthenticationScheme struct {
	Name        *string
	Description *string
	SpecURL     *string
	Type        *string
	Primary     *bool
}

type Bulk struct {
	Supported      *bool
	MaxOperations  *int
	MaxPayloadSize *int
}

type FilterSupport struct {
	Supported  *bool
	MaxResults *int
}

// Supported describes a capability that is merely on or off.
type Supported struct {
	Supported *bool
}

// ServiceProviderConfigs is the read-only capability descriptor of the provider.
type ServiceProviderConfigs struct {
	AuthenticationSchemes []AuthenticationScheme
	Bulk                  *Bulk
	ChangePassword        *Supported
	ETag                  *Supported
	Filter                *FilterSupport
	Patch                 *Supported
	Sort                  *Supported
	XMLDataFormat         *Supported
	Schemas               []string
}

func ServiceProviderConfigsFromDocument(doc Document) (*ServiceProviderConfigs, error) {
	d := newDecoder(doc)
	configs := ServiceProviderConfigs{
		AuthenticationSchemes: nestedList(d, "authenticationSchemes", decodeAuthenticationScheme),
		Bulk:                  nested(d, "bulk", decodeBulk),
		ChangePassword:        nested(d, "changePassword", decodeSupported),
		ETag:                  nested(d, "etag", decodeSupported),
		Filter:                nested(d, "filter", decodeFilterSupport),
		Patch:                 nested(d, "patch", decodeSupported),
		Sort:                  nested(d, "sort", decodeSupported),
		XMLDataFormat:         nested(d, "xmlDataFormat", decodeSupported),
		Schemas:               d.strings("schemas"),
	}

	err := d.err()
	if err != nil {
		return nil, err
	}

	return &configs, nil
}

func (c *ServiceProviderConfigs) ToDocument() Document {
	if c == nil {
		return nil
	}

	doc := Document{}
	setList(doc, "authenticationSchemes", c.AuthenticationSchemes, (*AuthenticationScheme).ToDocument)
	setDocument(doc, "bulk", c.Bulk.ToDocument())
	setDocument(doc, "changePassword", c.ChangePassword.ToDocument())
	setDocument(doc, "etag", c.ETag.ToDocument())
	setDocument(doc, "filter", c.Filter.ToDocument())
	setDocument(doc, "patch", c.Patch.ToDocument())
	setDocument(doc, "sort", c.Sort.ToDocument())
	setDocument(doc, "xmlDataFormat", c.XMLDataFormat.ToDocument())
	setStrings(doc, "schemas", c.Schemas)

	return doc
}

func decodeAuthenticationScheme(d *decoder) AuthenticationScheme {
	return AuthenticationScheme{
		Name:        d.str("name"),
		Description: d.str("description"),
		SpecURL:     d.str("specUrl"),
		Type:        d.str("type"),
		Primary:     d.boolean("primary"),
	}
}

func (a *AuthenticationScheme) ToDocument() Document {
	if a == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "name", a.Name)
	setValue(doc, "description", a.Description)
	setValue(doc, "specUrl", a.SpecURL)
	setValue(doc, "type", a.Type)
	setValue(doc, "primary", a.Primary)

	return doc
}

func decodeBulk(d *decoder) Bulk {
	return Bulk{
		Supported:      d.boolean("supported"),
		MaxOperations:  d.integer("maxOperations"),
		MaxPayloadSize: d.integer("maxPayloadSize"),
	}
}

func (b *Bulk) ToDocument() Document {
	if b == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "supported", b.Supported)
	setValue(doc, "maxOperations", b.MaxOperations)
	setValue(doc, "maxPayloadSize", b.MaxPayloadSize)

	return doc
}

func decodeFilterSupport(d *decoder) FilterSupport {
	return FilterSupport{
		Supported:  d.boolean("supported"),
		MaxResults: d.integer("maxResults"),
	}
}

func (f *FilterSupport) ToDocument() Document {
	if f == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "supported", f.Supported)
	setValue(doc, "maxResults", f.MaxResults)

	return doc
}

func decodeSupported(d *decoder) Supported {
	return Supported{Supported: d.boolean("supported")}
}

func (s *Supported) ToDocument() Document {
	if s == nil {
		return nil
	}

	doc := Document{}
	setValue(doc, "supported", s.Supported)

	return doc
}
