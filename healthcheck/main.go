package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"code.cloudfoundry.org/goshims/ioutilshim"
	"code.cloudfoundry.org/goshims/osshim"
	"github.com/redis/go-redis/v9"

	"github.com/zdscale/redislifecycle/secret"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:6379", "address of the redis server to check")
	timeout := flag.Duration("timeout", 1*time.Second, "dial and ping timeout")
	secretName := flag.String("secretName", "REDIS_PASS", "environment variable holding the requirepass secret")
	secretFile := flag.String("secretFile", "", "file holding the requirepass secret")
	flag.Parse()

	password, err := secret.Resolve(&osshim.OsShim{}, &ioutilshim.IoutilShim{}, secret.Sources{
		EnvName:           *secretName,
		FilePath:          *secretFile,
		CredhubAttempts:   1,
		CredhubRetryDelay: time.Second,
	})
	if err != nil {
		fail(err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         *addr,
		Password:     password,
		DialTimeout:  *timeout,
		ReadTimeout:  *timeout,
		WriteTimeout: *timeout,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		fail(err)
	}

	fmt.Println("healthcheck passed")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	fmt.Println("healthcheck failed")
	os.Exit(1)
}
