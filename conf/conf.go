// Package conf renders a server configuration file from a template by
// substituting every occurrence of a placeholder token with a secret value.
// All bytes other than the token are preserved verbatim; no validation of
// the surrounding configuration syntax is performed.
package conf

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/goshims/ioutilshim"
	"code.cloudfoundry.org/goshims/osshim"
	"github.com/drone/envsubst"

	"github.com/zdscale/redislifecycle"
)

func Render(text, marker, secret string) string {
	return strings.ReplaceAll(text, marker, secret)
}

// RenderFile reads the template, substitutes the marker with the secret and
// writes the result to outputPath, overwriting any previous rendering. When
// expandEnv is set, ${VAR} references in the template are expanded from the
// environment before the marker substitution, so a secret containing ${ is
// never re-expanded. It returns the number of rendered bytes.
func RenderFile(ioutil ioutilshim.Ioutil, os osshim.Os, templatePath, outputPath, marker, secret string, expandEnv bool) (int, error) {
	templateText, err := ioutil.ReadFile(templatePath)
	if err != nil {
		return 0, &redislifecycle.IOError{Op: "read template", Path: templatePath, Err: err}
	}

	text := string(templateText)

	if expandEnv {
		text, err = envsubst.Eval(text, func(name string) string {
			if value, ok := os.LookupEnv(name); ok {
				return value
			}
			return fmt.Sprintf("${%s}", name)
		})
		if err != nil {
			return 0, &redislifecycle.IOError{Op: "expand template", Path: templatePath, Err: err}
		}
	}

	rendered := Render(text, marker, secret)

	// 0600: the rendered file carries the secret.
	if err := ioutil.WriteFile(outputPath, []byte(rendered), 0600); err != nil {
		return 0, &redislifecycle.IOError{Op: "write rendered config", Path: outputPath, Err: err}
	}

	return len(rendered), nil
}
