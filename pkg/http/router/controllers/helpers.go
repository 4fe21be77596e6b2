package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
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

func errorResponseWriter(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, message string) {
	env := envelope{"error": map[string]string{
		"code":    http.StatusText(status),
		"message": message,
	}}

	if err := writeJSON(w, status, env, nil); err != nil {
		log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

// validateStruct runs the validator and returns the translated messages as one error.
func validateStruct(s interface{}) error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

type apiErrors struct {
	log *zap.Logger
}

func (a apiErrors) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.log.Error("server error", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	errorResponseWriter(a.log, w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func (a apiErrors) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponseWriter(a.log, w, r, http.StatusBadRequest, err.Error())
}

func (a apiErrors) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponseWriter(a.log, w, r, http.StatusNotFound, err.Error())
}

func (a apiErrors) UnprocessableResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponseWriter(a.log, w, r, http.StatusUnprocessableEntity, err.Error())
}

// getStatusCode maps the code of a util.Error to a response.
func (a apiErrors) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		a.ServerErrorResponse(w, r, err)
		return
	}

	switch ierr.Code() {
	case util.ErrBadParamInput:
		a.BadRequestResponse(w, r, err)
	case util.ErrNotFound:
		a.NotFoundResponse(w, r, err)
	case util.ErrUnprocessable:
		a.UnprocessableResponse(w, r, err)
	case util.ErrConflict:
		errorResponseWriter(a.log, w, r, http.StatusConflict, err.Error())
	default:
		a.ServerErrorResponse(w, r, err)
	}
}
