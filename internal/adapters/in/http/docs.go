// Package http is the inbound HTTP adapter. It serves the API described by
// the embedded OpenAPI document, validates requests against it and maps the
// error taxonomy onto status codes.
package http

import (
	"waterdelivery/internal/generated/servers"

	"github.com/swaggo/swag"
)

// apiDoc hands the embedded OpenAPI document to the swagger UI.
type apiDoc struct{}

func (apiDoc) ReadDoc() string {
	return string(servers.RawSpec())
}

func init() {
	swag.Register(swag.Name, apiDoc{})
}
