package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"product-api/pkg/logger"
	"product-api/pkg/policy"
	productService "product-api/service-api/internal/service/product"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	msgServerError   = "Server Error"
	msgForbidden     = "This action is unauthorized."
	msgNotFound      = "Product not found"
	msgInvalidData   = "The given data was invalid."
	msgEmailTaken    = "The email has already been taken."
	msgWrongCreds    = "Wrong credentials were provided"
	msgUserCreated   = "Successfully created user"
	msgUserLoggedIn  = "Successfully logged in user"
	msgUserLoggedOut = "User logged out"
)

// fieldOrder fixes the order of fields in validation responses
var fieldOrder = map[string]int{
	"name":        0,
	"email":       1,
	"password":    2,
	"description": 3,
	"price":       4,
}

// bindJSON decodes the request body. An empty body decodes to the zero value.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// respondInvalidJSON answers a body that is not a JSON object
func respondInvalidJSON(c *gin.Context, err error) {
	logger.Debugf("rejected malformed request body: %v", err)
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": msgInvalidData,
		"errors":  gin.H{},
	})
}

// respondValidation renders field errors with a summary message
func respondValidation(c *gin.Context, fieldErrors map[string][]string) {
	fields := make([]string, 0, len(fieldErrors))
	total := 0
	for field, messages := range fieldErrors {
		fields = append(fields, field)
		total += len(messages)
	}
	sort.Slice(fields, func(i, j int) bool {
		oi, iok := fieldOrder[fields[i]]
		oj, jok := fieldOrder[fields[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return fields[i] < fields[j]
	})

	message := msgInvalidData
	if len(fields) > 0 && len(fieldErrors[fields[0]]) > 0 {
		message = summarize(fieldErrors[fields[0]][0], total-1)
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"errors":  fieldErrors,
	})
}

func summarize(first string, more int) string {
	switch {
	case more <= 0:
		return first
	case more == 1:
		return first + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, more)
	}
}

// toFieldErrors flattens ozzo validation errors into field -> messages
func toFieldErrors(errs validation.Errors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for field, err := range errs {
		if err == nil {
			continue
		}
		out[field] = []string{err.Error()}
	}
	return out
}

// respondError translates service errors into HTTP responses
func respondError(c *gin.Context, err error, action string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		respondValidation(c, toFieldErrors(verrs))
	case errors.Is(err, policy.ErrForbidden):
		logger.Infof("%s denied: %v", action, err)
		c.JSON(http.StatusForbidden, gin.H{"message": msgForbidden})
	case errors.Is(err, productService.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	default:
		logger.Errorf(err, "failed to %s", action)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
	}
}
