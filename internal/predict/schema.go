package predict

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// successSchema is the contract a body must satisfy once it claims success.
var successSchema = map[string]any{
	"type":     "object",
	"required": []any{"success", "predictions"},
	"properties": map[string]any{
		"success": map[string]any{"const": true},
		"predictions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"crop", "probability"},
				"properties": map[string]any{
					"crop":        map[string]any{"type": "string"},
					"probability": map[string]any{"type": "number"},
				},
			},
		},
	},
}

const successSchemaURL = "schema://predict-response.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func responseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(successSchemaURL, successSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(successSchemaURL)
	})
	return compiledSchema, compileErr
}

// decodeResponse classifies a 2xx body. It returns the predictions on
// success and a *PredictionError otherwise.
func decodeResponse(body []byte) ([]Prediction, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &PredictionError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &PredictionError{Err: fmt.Errorf("response is not a JSON object")}
	}

	if success, _ := obj["success"].(bool); !success {
		msg, _ := obj["error"].(string)
		return nil, &PredictionError{Message: msg}
	}

	schema, err := responseSchema()
	if err != nil {
		return nil, &PredictionError{Err: fmt.Errorf("compile response schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &PredictionError{Err: fmt.Errorf("malformed response: %w", err)}
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &PredictionError{Err: fmt.Errorf("decode predictions: %w", err)}
	}
	if resp.Predictions == nil {
		resp.Predictions = []Prediction{}
	}
	return resp.Predictions, nil
}

// errorMessageFrom extracts the "error" string of a JSON body, if any.
func errorMessageFrom(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Error
}
