package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"go.uber.org/zap"
)

const maxBodyBytes = 32 << 20

type envelope map[string]interface{}

func (api *clusteringAPI) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *clusteringAPI) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var (
			syntaxError        *json.SyntaxError
			unmarshalTypeError *json.UnmarshalTypeError
			maxBytesError      *http.MaxBytesError
		)
		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func newErrorResponse(status int, message string) errorResponse {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message
	return resp
}

func (api *clusteringAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := api.writeJSON(w, status, newErrorResponse(status, message), nil); err != nil {
		api.log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *clusteringAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func (api *clusteringAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// getStatusCode. map the error category of a service error to a response.
func (api *clusteringAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch ierr.Code() {
	case util.ErrBadParamInput, util.ErrMalformedInput, util.ErrConfig:
		api.BadRequestResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}
