// Package turtle loads an ontology document into the domain graph using the
// knakk/rdf decoder. Sources may be local files or http(s) URLs.
package turtle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/knakk/rdf"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

const defaultFetchTimeout = 60 * time.Second

type Loader struct {
	client *http.Client
}

type Option func(*Loader)

// WithHTTPClient overrides the client used for remote sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.OntologyLoader = (*Loader)(nil)

// Load reads and decodes the whole document before returning; conversion
// never starts on a partial graph.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Graph, error) {
	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	g := domain.NewGraph()
	dec := rdf.NewTripleDecoder(rc, formatFor(source))
	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.OpError{
				Op:   "turtle.decode",
				Kind: domain.KindInvalidInput,
				Path: source,
				Err:  err,
			}
		}
		g.Add(mapTriple(tr))
	}
	return g, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, &domain.OpError{Op: "turtle.fetch", Kind: domain.KindInvalidInput, Path: source, Err: err}
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, &domain.OpError{Op: "turtle.fetch", Kind: domain.KindRemote, Path: source, Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &domain.OpError{
				Op:   "turtle.fetch",
				Kind: domain.KindRemote,
				Path: source,
				Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
			}
		}
		return resp.Body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, &domain.OpError{Op: "turtle.open", Kind: domain.KindInvalidInput, Path: source, Err: err}
	}
	return f, nil
}

// formatFor guesses the serialization from the source name; the OKH
// documents are Turtle, which is also the fallback.
func formatFor(source string) rdf.Format {
	switch {
	case strings.HasSuffix(source, ".nt"), strings.HasSuffix(source, ".n3"):
		return rdf.NTriples
	case strings.HasSuffix(source, ".rdf"), strings.HasSuffix(source, ".xml"):
		return rdf.RDFXML
	default:
		return rdf.Turtle
	}
}

func mapTriple(t rdf.Triple) domain.Triple {
	out := domain.Triple{
		Subject:   t.Subj.String(),
		Predicate: t.Pred.String(),
	}

	switch o := t.Obj.(type) {
	case rdf.Literal:
		term := domain.Term{
			Kind:     domain.TermLiteral,
			Value:    o.String(),
			Language: o.Lang(),
		}
		if dt := o.DataType.String(); dt != "" {
			term.Datatype = dt
		}
		out.Object = term
	case rdf.IRI:
		out.Object = domain.IRITerm(o.String())
	default:
		out.Object = domain.BlankTerm(t.Obj.String())
	}
	return out
}
