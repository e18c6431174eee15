package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=oapi-codegen.yaml openapi.yml

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swaggerErr  error
)

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

// RegisterSwaggerDoc publishes the document to the swag registry that echo-swagger serves.
// Only the first call registers; later calls return the first result.
func RegisterSwaggerDoc() error {
	swaggerOnce.Do(func() {
		doc, err := GetSwagger()
		if err != nil {
			swaggerErr = err
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			swaggerErr = err
			return
		}
		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			Title:            doc.Info.Title,
			Version:          doc.Info.Version,
			Description:      doc.Info.Description,
			SwaggerTemplate:  string(raw),
		})
	})
	return swaggerErr
}
