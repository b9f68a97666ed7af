package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/fpt-software/website-api/internal/shared/upload"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindBody binds a JSON or multipart/form-data body into obj and validates it.
func BindBody(c *gin.Context, obj any) bool {
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		return BindForm(c, obj)
	}
	return BindJSON(c, obj)
}

// BindForm decodes multipart form values into obj, a pointer to a struct with
// json tags, then validates it. Values for non-string fields are read as JSON,
// so booleans and numbers arrive as text and arrays as a JSON-stringified list.
func BindForm(c *gin.Context, obj any) bool {
	form, err := c.MultipartForm()
	if err != nil {
		return respondBindError(c, err)
	}

	payload, err := formPayload(form.Value, reflect.TypeOf(obj).Elem())
	if err != nil {
		return respondBindError(c, err)
	}
	if err := json.Unmarshal(payload, obj); err != nil {
		return respondBindError(c, err)
	}
	return Validate(c, obj)
}

// FormFile reads the optional file part named field. Requests that are not
// multipart, or carry no such part, yield a nil file.
func FormFile(c *gin.Context, field string) (*upload.File, bool) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, true
	}

	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		return nil, respondBindError(c, err)
	}

	file, err := upload.FromMultipart(header)
	if err != nil {
		return nil, respondBindError(c, err)
	}
	return file, true
}

func formPayload(values map[string][]string, t reflect.Type) ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(values))

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		given, ok := values[name]
		if !ok || len(given) == 0 {
			continue
		}

		kind := field.Type.Kind()
		if kind == reflect.Pointer {
			kind = field.Type.Elem().Kind()
		}

		switch {
		case kind == reflect.String:
			encoded, err := json.Marshal(given[0])
			if err != nil {
				return nil, err
			}
			raw[name] = encoded
		case kind == reflect.Slice && !strings.HasPrefix(strings.TrimSpace(given[0]), "["):
			// repeated fields: tags=a&tags=b
			encoded, err := json.Marshal(given)
			if err != nil {
				return nil, err
			}
			raw[name] = encoded
		case strings.TrimSpace(given[0]) == "":
			continue
		default:
			raw[name] = json.RawMessage(strings.TrimSpace(given[0]))
		}
	}

	return json.Marshal(raw)
}
