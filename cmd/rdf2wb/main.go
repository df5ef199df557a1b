package main

import "github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/cli"

func main() {
	cli.Execute()
}
