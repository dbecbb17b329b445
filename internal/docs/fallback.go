package docs

import "fmt"

// Static content served when neither the network nor the cache can help.
const fallbackBody = `crimp compresses JSON documents for LLM contexts.

The forward transform (optimize) compresses a JSON value with zstd and wraps
the result in a small envelope document that is itself valid JSON. The
inverse transform (restore) unpacks the envelope back into the original
value.

Options:

  aggressive   trade encode time for a smaller output
  unsafe       allow lossy shortcuts such as boolean-to-integer coercion;
               the round trip is no longer guaranteed

Run with network access to fetch the backend library's full documentation.`

// fallbackDocument returns built-in content for owner/repo.
func fallbackDocument(owner, repo string) *Document {
	return &Document{
		Title:   fmt.Sprintf("%s/%s", owner, repo),
		Summary: "Documentation is unavailable offline; showing built-in notes.",
		Body:    fallbackBody,
		Source:  SourceFallback,
	}
}
