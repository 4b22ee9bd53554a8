package td

import (
	"sort"

	"github.com/reoring/wotschema/vocab"
)

// Security scheme names.
const (
	SchemeNoSec  = "nosec"
	SchemeBasic  = "basic"
	SchemeDigest = "digest"
	SchemeAPIKey = "apikey"
	SchemeBearer = "bearer"
	SchemePSK    = "psk"
	SchemeOAuth2 = "oauth2"
)

var schemeTypes = map[string]string{
	vocab.NoSecurityScheme:     SchemeNoSec,
	vocab.BasicSecurityScheme:  SchemeBasic,
	vocab.DigestSecurityScheme: SchemeDigest,
	vocab.APIKeySecurityScheme: SchemeAPIKey,
	vocab.BearerSecurityScheme: SchemeBearer,
	vocab.PSKSecurityScheme:    SchemePSK,
	vocab.OAuth2SecurityScheme: SchemeOAuth2,
}

// SchemeForType maps a wotsec scheme class IRI onto its scheme name.
func SchemeForType(iri string) (string, bool) {
	s, ok := schemeTypes[iri]
	return s, ok
}

// SecurityScheme is one security configuration of a Thing.
type SecurityScheme struct {
	name   string
	config map[string]string
	types  []string
}

// NewSecurityScheme copies config and sets its "scheme" entry to name.
func NewSecurityScheme(name string, config map[string]string, types ...string) SecurityScheme {
	c := make(map[string]string, len(config)+1)
	for k, v := range config {
		c[k] = v
	}
	c["scheme"] = name
	return SecurityScheme{name: name, config: c, types: append([]string(nil), types...)}
}

func (s SecurityScheme) Name() string { return s.name }

// Configuration returns a copy of the configuration. It always contains
// "scheme".
func (s SecurityScheme) Configuration() map[string]string {
	c := make(map[string]string, len(s.config))
	for k, v := range s.config {
		c[k] = v
	}
	return c
}

// ConfigurationKeys returns the configuration keys, sorted.
func (s SecurityScheme) ConfigurationKeys() []string {
	keys := make([]string, 0, len(s.config))
	for k := range s.config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s SecurityScheme) SemanticTypes() []string { return append([]string(nil), s.types...) }
