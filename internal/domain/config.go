package domain

// DefaultRemoteOntology is fetched when no local ontology file is present,
// mirroring how the tool is run from a fresh checkout.
const DefaultRemoteOntology = "https://raw.githubusercontent.com/OPEN-NEXT/LOSH/master/osh-metadata.ttl"

// DefaultLocalOntology is preferred over the remote document when it exists.
const DefaultLocalOntology = "osh-metadata.ttl"

// Config carries the run-wide settings of a conversion.
type Config struct {
	// APIURL is the api.php endpoint of the target Wikibase instance.
	APIURL string

	// DefaultLanguage is assumed for annotation literals without a tag.
	DefaultLanguage string

	// AnnotationSeparator joins multiple labels or descriptions that share
	// a language.
	AnnotationSeparator string

	// MaxDescriptionRunes bounds description length; Wikibase rejects
	// over-long values.
	MaxDescriptionRunes int

	Paths PathsConfig
}

// PathsConfig names the pieces of the state directory.
type PathsConfig struct {
	// StateDir is the root for links, reports and logs.
	StateDir string

	LinksFile  string
	ReportsDir string
	LogsDir    string
}

// DefaultConfig provides the settings a plain `convert` run uses.
func DefaultConfig() Config {
	return Config{
		APIURL:              "http://losh.ose-germany.de/api.php",
		DefaultLanguage:     "en",
		AnnotationSeparator: "\n\n",
		MaxDescriptionRunes: 250,
		Paths: PathsConfig{
			StateDir:   ".rdf2wb",
			LinksFile:  "links.db",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}
