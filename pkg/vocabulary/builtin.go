package vocabulary

import (
	"context"
	_ "embed"

	"github.com/aretw0/dwellkeys/pkg/ports"
)

//go:embed data/es.yaml
var spanish []byte

// Builtin returns the embedded Spanish vocabulary.
func Builtin() ports.VocabularySource {
	return builtinSource{}
}

type builtinSource struct{}

func (builtinSource) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(spanish, FormatYAML)
}
