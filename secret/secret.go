// Package secret resolves the value substituted into the rendered
// configuration. An explicit secret file wins over credhub, which wins over
// the environment variable; only the environment variable is allowed to be
// absent, resolving to the empty string.
package secret

import (
	"fmt"
	"strings"
	"time"

	"code.cloudfoundry.org/goshims/ioutilshim"
	"code.cloudfoundry.org/goshims/osshim"

	"github.com/zdscale/redislifecycle"
	"github.com/zdscale/redislifecycle/credhub"
	"github.com/zdscale/redislifecycle/platformoptions"
)

type Sources struct {
	EnvName           string
	FilePath          string
	CredhubAttempts   int
	CredhubRetryDelay time.Duration
}

func Resolve(os osshim.Os, ioutil ioutilshim.Ioutil, sources Sources) (string, error) {
	if sources.FilePath != "" {
		contents, err := ioutil.ReadFile(sources.FilePath)
		if err != nil {
			return "", &redislifecycle.IOError{Op: "read secret file", Path: sources.FilePath, Err: err}
		}
		// docker secrets are commonly newline-terminated
		return strings.TrimSuffix(strings.TrimSuffix(string(contents), "\n"), "\r"), nil
	}

	options, err := platformoptions.Get(os.Getenv("REDIS_PLATFORM_OPTIONS"))
	if err != nil {
		return "", fmt.Errorf("Invalid platform options: %v", err)
	}
	if options != nil && options.CredhubURI != "" {
		return credhub.New(os, sources.CredhubAttempts, sources.CredhubRetryDelay).
			GetSecret(options.CredhubURI, "/"+sources.EnvName)
	}

	return os.Getenv(sources.EnvName), nil
}
