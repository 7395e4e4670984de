package middleware

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

// MalformedBodyMessage is reported when the request body cannot be decoded
const MalformedBodyMessage = "Malformed request body."

// BindBody decodes a JSON, form or multipart body into obj according to the
// request's Content-Type. Field rules are checked later by the services, so
// only decoding failures are reported here, as a ValidationError.
func BindBody(c *gin.Context, obj interface{}) error {
	var err error
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm:
		err = binding.FormMultipart.Bind(c.Request, obj)
	case binding.MIMEPOSTForm:
		err = binding.Form.Bind(c.Request, obj)
	default:
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			return nil
		}
		err = binding.JSON.Bind(c.Request, obj)
	}
	if err != nil {
		return apperrors.NewFieldError("non_field_errors", MalformedBodyMessage)
	}
	return nil
}

// FormFile returns the named multipart file part, or nil when the request
// is not multipart or the part is missing.
func FormFile(c *gin.Context, name string) (*multipart.FileHeader, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}
	fh, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperrors.NewFieldError(name, "The submitted data was not a file. Check the encoding type on the form.")
	}
	return fh, nil
}
