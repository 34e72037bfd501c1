package http

import (
	"net/http"

	"reportgate/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return jsonHandler(http.StatusOK, fn, opts...)
}

// JSONHandlerCreated is JSONHandler with a 201 on success
func JSONHandlerCreated[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return jsonHandler(http.StatusCreated, fn, opts...)
}

func jsonHandler[T any](status int, fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return Response{Status: status, Body: out}
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
