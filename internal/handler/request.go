package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// queryParams are the fields read from the URL of a GET request.
var queryParams = []string{"city", "month", "day", "start_index"}

// decodeRequest reads the raw query of r: the JSON body of a POST, or the
// URL query parameters of a GET. An empty body yields an empty RawRequest so
// that validation reports the missing fields.
func decodeRequest(r *http.Request) (domain.RawRequest, error) {
	if r.Method == http.MethodGet {
		return bindQuery(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrInvalidRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.RawRequest{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: request body is not valid JSON: %v", domain.ErrInvalidRequest, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: request body must be a JSON object", domain.ErrInvalidRequest)
	}
	return domain.RawRequest(obj), nil
}

// bindQuery copies the known query parameters that are present into a RawRequest.
func bindQuery(r *http.Request) (domain.RawRequest, error) {
	raw := domain.RawRequest{}
	values := r.URL.Query()
	for _, name := range queryParams {
		var v *string
		if err := runtime.BindQueryParameter("form", true, false, name, values, &v); err != nil {
			return nil, fmt.Errorf("%w: invalid %s parameter: %v", domain.ErrInvalidRequest, name, err)
		}
		if v != nil {
			raw[name] = *v
		}
	}
	return raw, nil
}
