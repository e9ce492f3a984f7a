package interfaces

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApplicationContext carries the request, its decoded body and the values
// set by middleware into a controller.
type ApplicationContext[T any] struct {
	Ctx    *gin.Context
	Body   *T
	Keys   map[string]any
	Header http.Header
	Param  map[string]string
	Query  map[string]string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func (ac *ApplicationContext[T]) SetContextData(key string, data any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = data
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	data, _ := ac.Keys[key].(string)
	return data
}
