package redislifecycle

import (
	"bytes"
	"flag"
	"fmt"
	"time"
)

type LifecycleLauncherConfig struct {
	*flag.FlagSet

	ExecutablePath string
}

const (
	lifecycleLauncherTemplatePathFlag = "templatePath"
	lifecycleLauncherOutputPathFlag   = "outputPath"
	lifecycleLauncherServerBinaryFlag = "serverBinary"
	lifecycleLauncherPlaceholderFlag  = "placeholder"
	lifecycleLauncherSecretNameFlag   = "secretName"
	lifecycleLauncherSecretFileFlag   = "secretFile"
	lifecycleLauncherExpandEnvFlag    = "expandEnv"

	credhubConnectAttemptsFlag = "credhubConnectAttempts"
	credhubRetryDelayFlag      = "credhubRetryDelay"

	credhubConnectAttemptsDefault = 3
	credhubRetryDelayDefault      = 1 * time.Second
)

var lifecycleLauncherDefaults = map[string]string{
	lifecycleLauncherTemplatePathFlag: "/etc/redis/redis.conf.template",
	lifecycleLauncherOutputPathFlag:   "/etc/redis/redis.conf",
	lifecycleLauncherServerBinaryFlag: "redis-server",
	lifecycleLauncherPlaceholderFlag:  "__TOKEN__",
	lifecycleLauncherSecretNameFlag:   "REDIS_PASS",
}

func NewLifecycleLauncherConfig() LifecycleLauncherConfig {
	flagSet := flag.NewFlagSet("launcher", flag.ExitOnError)

	flagSet.String(
		lifecycleLauncherTemplatePathFlag,
		lifecycleLauncherDefaults[lifecycleLauncherTemplatePathFlag],
		"configuration template containing the placeholder token",
	)

	flagSet.String(
		lifecycleLauncherOutputPathFlag,
		lifecycleLauncherDefaults[lifecycleLauncherOutputPathFlag],
		"file where the rendered configuration should be written",
	)

	flagSet.String(
		lifecycleLauncherServerBinaryFlag,
		lifecycleLauncherDefaults[lifecycleLauncherServerBinaryFlag],
		"server binary to hand control to once the configuration is rendered",
	)

	flagSet.String(
		lifecycleLauncherPlaceholderFlag,
		lifecycleLauncherDefaults[lifecycleLauncherPlaceholderFlag],
		"placeholder token replaced by the secret in the template",
	)

	flagSet.String(
		lifecycleLauncherSecretNameFlag,
		lifecycleLauncherDefaults[lifecycleLauncherSecretNameFlag],
		"environment variable holding the secret",
	)

	flagSet.String(
		lifecycleLauncherSecretFileFlag,
		"",
		"file holding the secret, takes precedence over the environment variable",
	)

	flagSet.Bool(
		lifecycleLauncherExpandEnvFlag,
		false,
		"also expand ${VAR} references in the template from the environment",
	)

	flagSet.Int(
		credhubConnectAttemptsFlag,
		credhubConnectAttemptsDefault,
		"number of times that the credhub client will attempt to connect to credhub",
	)

	flagSet.Duration(
		credhubRetryDelayFlag,
		credhubRetryDelayDefault,
		"delay duration that the credhub client will wait before retrying the connection to credhub",
	)

	return LifecycleLauncherConfig{
		FlagSet: flagSet,

		ExecutablePath: "/tmp/lifecycle/launcher",
	}
}

func (s LifecycleLauncherConfig) Path() string {
	return s.ExecutablePath
}

func (s LifecycleLauncherConfig) Args() []string {
	argv := []string{}

	s.FlagSet.VisitAll(func(flag *flag.Flag) {
		argv = append(argv, fmt.Sprintf("-%s=%s", flag.Name, flag.Value.String()))
	})

	return argv
}

func (s LifecycleLauncherConfig) Validate() error {
	var validationError ValidationError

	s.FlagSet.VisitAll(func(flag *flag.Flag) {
		if flag.Name == lifecycleLauncherSecretFileFlag {
			return
		}
		value := flag.Value.String()
		if value == "" {
			validationError = validationError.Append(fmt.Errorf("missing flag: -%s", flag.Name))
		}
	})

	if !validationError.Empty() {
		return validationError
	}

	return nil
}

func (s LifecycleLauncherConfig) TemplatePath() string {
	return s.Lookup(lifecycleLauncherTemplatePathFlag).Value.String()
}

func (s LifecycleLauncherConfig) OutputPath() string {
	return s.Lookup(lifecycleLauncherOutputPathFlag).Value.String()
}

func (s LifecycleLauncherConfig) ServerBinary() string {
	return s.Lookup(lifecycleLauncherServerBinaryFlag).Value.String()
}

func (s LifecycleLauncherConfig) Placeholder() string {
	return s.Lookup(lifecycleLauncherPlaceholderFlag).Value.String()
}

func (s LifecycleLauncherConfig) SecretName() string {
	return s.Lookup(lifecycleLauncherSecretNameFlag).Value.String()
}

func (s LifecycleLauncherConfig) SecretFile() string {
	return s.Lookup(lifecycleLauncherSecretFileFlag).Value.String()
}

func (s LifecycleLauncherConfig) ExpandEnv() bool {
	return s.Lookup(lifecycleLauncherExpandEnvFlag).Value.String() == "true"
}

func (s LifecycleLauncherConfig) CredhubConnectAttempts() int {
	return s.Lookup(credhubConnectAttemptsFlag).Value.(flag.Getter).Get().(int)
}

func (s LifecycleLauncherConfig) CredhubRetryDelay() time.Duration {
	return s.Lookup(credhubRetryDelayFlag).Value.(flag.Getter).Get().(time.Duration)
}

type ValidationError []error

func (ve ValidationError) Append(err error) ValidationError {
	switch err := err.(type) {
	case ValidationError:
		return append(ve, err...)
	default:
		return append(ve, err)
	}
}

func (ve ValidationError) Error() string {
	var buffer bytes.Buffer

	for i, err := range ve {
		if err == nil {
			continue
		}
		if i > 0 {
			buffer.WriteString(", ")
		}
		buffer.WriteString(err.Error())
	}

	return buffer.String()
}

func (ve ValidationError) Empty() bool {
	return len(ve) == 0
}
