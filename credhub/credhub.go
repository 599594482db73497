package credhub

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	api "code.cloudfoundry.org/credhub-cli/credhub"
	"code.cloudfoundry.org/goshims/osshim"
)

type Credhub struct {
	os       osshim.Os
	attempts int
	delay    time.Duration
}

func New(os osshim.Os, attempts int, delay time.Duration) *Credhub {
	return &Credhub{
		os:       os,
		attempts: attempts,
		delay:    delay,
	}
}

// GetSecret fetches the latest value-typed credential stored under name.
// Connection failures are retried per the configured attempts and delay;
// any other failure is returned immediately.
func (c *Credhub) GetSecret(credhubURI, name string) (string, error) {
	ch, err := c.credhubClient(credhubURI)
	if err != nil {
		return "", fmt.Errorf("Unable to set up credhub client: %v", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(c.delay)
		}

		cred, err := ch.GetLatestValue(name)
		if err == nil {
			return string(cred.Value), nil
		}
		lastErr = err

		if !connectionError(err) {
			break
		}
	}

	return "", fmt.Errorf("Unable to fetch credential %s from credhub: %v", name, lastErr)
}

func (c *Credhub) credhubClient(credhubURI string) (*api.CredHub, error) {
	if c.os.Getenv("LAUNCHER_INSTANCE_CERT") == "" || c.os.Getenv("LAUNCHER_INSTANCE_KEY") == "" {
		return nil, fmt.Errorf("Missing LAUNCHER_INSTANCE_CERT and/or LAUNCHER_INSTANCE_KEY")
	}
	if c.os.Getenv("LAUNCHER_SYSTEM_CERTS_PATH") == "" {
		return nil, fmt.Errorf("Missing LAUNCHER_SYSTEM_CERTS_PATH")
	}

	systemCertsPath := c.os.Getenv("LAUNCHER_SYSTEM_CERTS_PATH")
	caCerts := []string{}
	files, err := os.ReadDir(systemCertsPath)
	if err != nil {
		return nil, fmt.Errorf("Can't read contents of system cert path: %v", err)
	}
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".crt") {
			contents, err := os.ReadFile(filepath.Join(systemCertsPath, file.Name()))
			if err != nil {
				return nil, fmt.Errorf("Can't read contents of cert in system cert path: %v", err)
			}
			caCerts = append(caCerts, string(contents))
		}
	}

	return api.New(
		credhubURI,
		api.ClientCert(c.os.Getenv("LAUNCHER_INSTANCE_CERT"), c.os.Getenv("LAUNCHER_INSTANCE_KEY")),
		api.CaCerts(caCerts...),
	)
}

func connectionError(err error) bool {
	var netErr net.Error
	switch e := err.(type) {
	case *url.Error:
		netErr, _ = e.Err.(net.Error)
	case net.Error:
		netErr = e
	}
	if netErr != nil {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}
