package config_test

import (
	"fmt"
	"strings"
)

// errorText renders the message chain and metadata of err.
func errorText(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())
	walk(err, func(e error) {
		if md, ok := e.(interface{ Metadata() map[string]any }); ok {
			for k, v := range md.Metadata() {
				fmt.Fprintf(&b, " %s=%v", k, v)
			}
		}
	})
	return b.String()
}

func walk(err error, visit func(error)) {
	if err == nil {
		return
	}
	visit(err)
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			walk(inner, visit)
		}
	case interface{ Unwrap() error }:
		walk(e.Unwrap(), visit)
	}
}
