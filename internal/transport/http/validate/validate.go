// Package validate decodes and validates request bodies. Field constraints
// live on dto struct tags; violations come back as one IncorrectParameters
// error naming every failed field.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dkotelnikov/eventory/internal/domain"
)

var v = validator.New()

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrIncorrectParameters("invalid request body", err.Error())
	}
	return nil
}

// Struct checks dst against its validate tags.
func Struct(dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrIncorrectParameters("invalid request body", err.Error())
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return domain.ErrIncorrectParameters("invalid request body", strings.Join(fields, "; "))
}

// Body is DecodeJSON followed by Struct.
func Body(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Struct(dst)
}
