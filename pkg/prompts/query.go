package prompts

import (
	"github.com/blues/jsonata-go"
	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsondoc"
)

// Query evaluates a JSONata expression against a document's content. An
// expression that matches nothing yields nil. Objects in the result come back
// with sorted keys since JSONata works on plain maps.
func Query(doc Document, expression string) (any, error) {
	expr, err := jsonata.Compile(expression)
	if err != nil {
		return nil, errors.QueryFailed(expression, err)
	}

	var input any = map[string]any{}
	if doc.Content != nil {
		input = jsondoc.ToPlain(doc.Content)
	}

	result, err := expr.Eval(input)
	if err != nil {
		if err == jsonata.ErrUndefined {
			return nil, nil
		}
		return nil, errors.QueryFailed(expression, err)
	}
	return jsondoc.Normalize(result), nil
}
