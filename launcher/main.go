package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	"code.cloudfoundry.org/bytefmt"
	"code.cloudfoundry.org/goshims/ioutilshim"
	"code.cloudfoundry.org/goshims/osshim"
	"code.cloudfoundry.org/lager/v3"
	yaml "gopkg.in/yaml.v2"

	"github.com/zdscale/redislifecycle"
	"github.com/zdscale/redislifecycle/conf"
	"github.com/zdscale/redislifecycle/env"
	"github.com/zdscale/redislifecycle/secret"
)

const overridesFilename = "launcher.yml"

type launcherOverrides struct {
	TemplatePath string `yaml:"template_path"`
	OutputPath   string `yaml:"output_path"`
	ServerBinary string `yaml:"server_binary"`
	Placeholder  string `yaml:"placeholder"`
	SecretName   string `yaml:"secret_name"`
}

func main() {
	config := redislifecycle.NewLifecycleLauncherConfig()

	if err := config.Parse(os.Args[1:len(os.Args)]); err != nil {
		println(err.Error())
		os.Exit(1)
	}

	if err := applyOverrides(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s - %s\n", overridesFilename, err)
		os.Exit(1)
	}

	if err := config.Validate(); err != nil {
		println(err.Error())
		usage()
	}

	logger := lager.NewLogger("launcher")
	logger.RegisterSink(lager.NewWriterSink(os.Stderr, lager.INFO))

	secretValue, err := secret.Resolve(&osshim.OsShim{}, &ioutilshim.IoutilShim{}, secret.Sources{
		EnvName:           config.SecretName(),
		FilePath:          config.SecretFile(),
		CredhubAttempts:   config.CredhubConnectAttempts(),
		CredhubRetryDelay: config.CredhubRetryDelay(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(redislifecycle.ExitCodeFromError(err))
	}
	if secretValue == "" {
		logger.Info("empty-secret", lager.Data{"secret-name": config.SecretName()})
	}

	renderedBytes, err := conf.RenderFile(
		&ioutilshim.IoutilShim{},
		&osshim.OsShim{},
		config.TemplatePath(),
		config.OutputPath(),
		config.Placeholder(),
		secretValue,
		config.ExpandEnv(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(redislifecycle.ExitCodeFromError(err))
	}

	logger.Info("rendered", lager.Data{
		"template": config.TemplatePath(),
		"output":   config.OutputPath(),
		"size":     bytefmt.ByteSize(uint64(renderedBytes)),
	})

	serverPath, err := exec.LookPath(config.ServerBinary())
	if err != nil {
		launchErr := &redislifecycle.LaunchError{Binary: config.ServerBinary(), Err: err}
		fmt.Fprintf(os.Stderr, "%s\n", launchErr)
		os.Exit(redislifecycle.ExitCodeFromError(launchErr))
	}

	environ := env.Scrub(os.Environ(), config.SecretName(), "REDIS_PLATFORM_OPTIONS")

	runProcess(serverPath, config.OutputPath(), environ)
}

func applyOverrides(config *redislifecycle.LifecycleLauncherConfig) error {
	overridesData, err := os.ReadFile(overridesFilename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	overrides := launcherOverrides{}
	if err := yaml.Unmarshal(overridesData, &overrides); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", overridesFilename, err)
	}

	for flagName, value := range map[string]string{
		"templatePath": overrides.TemplatePath,
		"outputPath":   overrides.OutputPath,
		"serverBinary": overrides.ServerBinary,
		"placeholder":  overrides.Placeholder,
		"secretName":   overrides.SecretName,
	} {
		if value != "" {
			if err := config.Set(flagName, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func usage() {
	flag.PrintDefaults()
	os.Exit(1)
}
