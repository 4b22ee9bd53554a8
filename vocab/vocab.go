// Package vocab contains the IRIs of the Thing Description, JSON Schema,
// hypermedia controls and security vocabularies used by the Web of Things.
package vocab

import (
	"github.com/cayleygraph/quad/voc"
	"github.com/cayleygraph/quad/voc/rdf"
)

func init() {
	voc.RegisterPrefix(TDPrefix, TD)
	voc.RegisterPrefix(JSPrefix, JS)
	voc.RegisterPrefix(HCTLPrefix, HCTL)
	voc.RegisterPrefix(HTVPrefix, HTV)
	voc.RegisterPrefix(WoTSecPrefix, WoTSec)
}

const (
	TD       = `https://www.w3.org/2019/wot/td#`
	TDPrefix = `td:`

	JS       = `https://www.w3.org/2019/wot/json-schema#`
	JSPrefix = `js:`

	HCTL       = `https://www.w3.org/2019/wot/hypermedia#`
	HCTLPrefix = `hctl:`

	HTV       = `http://www.w3.org/2011/http#`
	HTVPrefix = `htv:`

	WoTSec       = `https://www.w3.org/2019/wot/security#`
	WoTSecPrefix = `wotsec:`

	XSD = `http://www.w3.org/2001/XMLSchema#`
)

// RDFType is the full IRI of rdf:type.
const RDFType = rdf.NS + `type`

// JSON Schema kind markers.
const (
	ObjectSchema  = JS + `ObjectSchema`
	ArraySchema   = JS + `ArraySchema`
	StringSchema  = JS + `StringSchema`
	NumberSchema  = JS + `NumberSchema`
	IntegerSchema = JS + `IntegerSchema`
	BooleanSchema = JS + `BooleanSchema`
	NullSchema    = JS + `NullSchema`
)

// JSON Schema predicates.
const (
	Properties   = JS + `properties`
	PropertyName = JS + `propertyName`
	Required     = JS + `required`
	Items        = JS + `items`
	MinItems     = JS + `minItems`
	MaxItems     = JS + `maxItems`
	Minimum      = JS + `minimum`
	Maximum      = JS + `maximum`
	Enum         = JS + `enum`
)

// Thing Description classes and predicates.
const (
	Thing              = TD + `Thing`
	PropertyAffordance = TD + `PropertyAffordance`
	ActionAffordance   = TD + `ActionAffordance`
	EventAffordance    = TD + `EventAffordance`

	Title                    = TD + `title`
	Name                     = TD + `name`
	HasBase                  = TD + `hasBase`
	HasPropertyAffordance    = TD + `hasPropertyAffordance`
	HasActionAffordance      = TD + `hasActionAffordance`
	HasEventAffordance       = TD + `hasEventAffordance`
	HasSecurityConfiguration = TD + `hasSecurityConfiguration`
	HasForm                  = TD + `hasForm`
	HasInputSchema           = TD + `hasInputSchema`
	HasOutputSchema          = TD + `hasOutputSchema`
	HasNotificationSchema    = TD + `hasNotificationSchema`
	IsObservable             = TD + `isObservable`
	IsSafe                   = TD + `isSafe`
	IsIdempotent             = TD + `isIdempotent`
)

// Operation types.
const (
	ReadProperty       = TD + `readProperty`
	WriteProperty      = TD + `writeProperty`
	ObserveProperty    = TD + `observeProperty`
	UnobserveProperty  = TD + `unobserveProperty`
	InvokeAction       = TD + `invokeAction`
	SubscribeEvent     = TD + `subscribeEvent`
	UnsubscribeEvent   = TD + `unsubscribeEvent`
	ReadAllProperties  = TD + `readAllProperties`
	WriteAllProperties = TD + `writeAllProperties`
)

// Hypermedia controls.
const (
	HasTarget        = HCTL + `hasTarget`
	ForContentType   = HCTL + `forContentType`
	HasOperationType = HCTL + `hasOperationType`
	ForSubProtocol   = HCTL + `forSubProtocol`

	MethodName = HTV + `methodName`
)

// Security schemes.
const (
	NoSecurityScheme     = WoTSec + `NoSecurityScheme`
	BasicSecurityScheme  = WoTSec + `BasicSecurityScheme`
	DigestSecurityScheme = WoTSec + `DigestSecurityScheme`
	APIKeySecurityScheme = WoTSec + `APIKeySecurityScheme`
	BearerSecurityScheme = WoTSec + `BearerSecurityScheme`
	PSKSecurityScheme    = WoTSec + `PSKSecurityScheme`
	OAuth2SecurityScheme = WoTSec + `OAuth2SecurityScheme`
)

var operationNames = map[string]string{
	ReadProperty:       "readproperty",
	WriteProperty:      "writeproperty",
	ObserveProperty:    "observeproperty",
	UnobserveProperty:  "unobserveproperty",
	InvokeAction:       "invokeaction",
	SubscribeEvent:     "subscribeevent",
	UnsubscribeEvent:   "unsubscribeevent",
	ReadAllProperties:  "readallproperties",
	WriteAllProperties: "writeallproperties",
}

// OperationName maps an operation type IRI onto its TD JSON name
// (td:readProperty -> "readproperty").
func OperationName(iri string) (string, bool) {
	n, ok := operationNames[iri]
	return n, ok
}

// OperationIRI is the inverse of OperationName.
func OperationIRI(name string) (string, bool) {
	for iri, n := range operationNames {
		if n == name {
			return iri, true
		}
	}
	return "", false
}

// Short returns the prefixed form of iri when its namespace is registered.
func Short(iri string) string { return voc.ShortIRI(iri) }

// Full expands a prefixed IRI (e.g. "js:ObjectSchema").
func Full(iri string) string { return voc.FullIRI(iri) }
