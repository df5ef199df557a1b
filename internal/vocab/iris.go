// Package vocab holds the IRI constants of the vocabularies the OKH-LOSH
// ontology draws from. Only the terms the converter actually inspects are
// listed; everything else flows through the rule table as opaque IRIs.
package vocab

// Core RDF / RDFS terms.
const (
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	RDFSLabel         = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSComment       = "http://www.w3.org/2000/01/rdf-schema#comment"
	RDFSSubClassOf    = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	RDFSSubPropertyOf = "http://www.w3.org/2000/01/rdf-schema#subPropertyOf"
	RDFSRange         = "http://www.w3.org/2000/01/rdf-schema#range"
	RDFSDomain        = "http://www.w3.org/2000/01/rdf-schema#domain"
)

// OWL terms deciding what a subject becomes on the Wikibase side.
const (
	OWLClass            = "http://www.w3.org/2002/07/owl#Class"
	OWLObjectProperty   = "http://www.w3.org/2002/07/owl#ObjectProperty"
	OWLDatatypeProperty = "http://www.w3.org/2002/07/owl#DatatypeProperty"
	OWLNamedIndividual  = "http://www.w3.org/2002/07/owl#NamedIndividual"
	OWLOntology         = "http://www.w3.org/2002/07/owl#Ontology"
	OWLCardinality      = "http://www.w3.org/2002/07/owl#cardinality"
	OWLMaxCardinality   = "http://www.w3.org/2002/07/owl#maxCardinality"
	OWLMinCardinality   = "http://www.w3.org/2002/07/owl#minCardinality"
)

// Annotation vocabularies used for labels and descriptions.
const (
	SKOSPrefLabel  = "http://www.w3.org/2004/02/skos/core#prefLabel"
	SKOSDefinition = "http://www.w3.org/2004/02/skos/core#definition"

	DCTitle       = "http://purl.org/dc/elements/1.1/title"
	DCDescription = "http://purl.org/dc/elements/1.1/description"

	DCTermsTitle       = "http://purl.org/dc/terms/title"
	DCTermsDescription = "http://purl.org/dc/terms/description"
)

// schema.org predicates the ontology reuses for its claims.
const (
	SchemaBase = "http://schema.org/"

	SchemaInLanguage         = SchemaBase + "inLanguage"
	SchemaVersion            = SchemaBase + "version"
	SchemaIsBasedOn          = SchemaBase + "isBasedOn"
	SchemaCopyrightHolder    = SchemaBase + "copyrightHolder"
	SchemaLicenseDeclared    = SchemaBase + "licenseDeclared"
	SchemaCreativeWorkStatus = SchemaBase + "creativeWorkStatus"
	SchemaImage              = SchemaBase + "image"
	SchemaHasPart            = SchemaBase + "hasPart"
	SchemaCodeRepository     = SchemaBase + "codeRepository"
	SchemaValue              = SchemaBase + "value"
	SchemaAmount             = SchemaBase + "amount"
	SchemaURL                = SchemaBase + "URL"
)

// OBO terms.
const (
	OBOBase     = "http://purl.obolibrary.org/obo/"
	OBOFunction = OBOBase + "BFO_0000016"
)

// OKHBase is the IRI of the owl:Ontology header subject of the OKH-LOSH
// metadata document.
const OKHBase = "http://purl.org/oseg/ontologies/osh-metadata/0.1/base"
