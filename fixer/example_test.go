package fixer_test

import (
	"fmt"
	"log"

	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
	"github.com/MaximilianKoestler/hcloud-openapi/parser"
)

// Example demonstrates basic usage of the fixer package.
func Example() {
	doc := `{
  "get_server_response": {
    "type": "object",
    "properties": {
      "status": {"type": "string", "enum": ["running", "off"]},
      "cores": {"type": "number"}
    }
  }
}`
	parseResult, err := parser.New().ParseBytes("servers.json", []byte(doc))
	if err != nil {
		log.Fatal(err)
	}

	result, err := fixer.FixWithOptions(fixer.WithParsed(*parseResult))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Applied %d fix(es)\n", result.FixCount)
	for _, fix := range result.Fixes {
		fmt.Printf("  %s: %s\n", fix.Type, fix.Description)
	}

	// Output:
	// Applied 2 fix(es)
	//   narrowed-number: narrowed number "cores" to integer
	//   sorted-enum: sorted 2 enum values
}
