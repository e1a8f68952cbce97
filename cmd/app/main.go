package main

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gobuffalo/buffalo/servers"

	"github.com/silinternational/terra/actions"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
)

var GitCommitHash string

// main is the starting point for your Buffalo application.
// You can feel free and add to this `main` method, change
// what it does, etc...
// All we ask is that, at some point, you make sure to
// call `app.Serve()`, unless you don't want to start your
// application that is. :)
func main() {
	log.Init(domain.Env.GoEnv, GitCommitHash)
	defer log.Flush()

	srv, err := getServer()
	if err != nil {
		log.Fatalf("error creating server: %s", err)
	}

	app := actions.App()
	if err := app.Serve(srv); err != nil {
		if err.Error() != "context canceled" {
			log.Fatalf("server error: %s", err)
		}
		os.Exit(0)
	}
}

func getServer() (servers.Server, error) {
	const (
		certFile = "cert.pem"
		keyFile  = "key.pem"
	)

	if domain.Env.DisableTLS {
		return servers.New(), nil
	}

	err := generateCert(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("generate cert: %w", err)
	}

	cfg, err := tlsConfig(certFile, keyFile)
	if err != nil {
		return servers.New(), fmt.Errorf("get TLS config: %w", err)
	}
	listener, err := tls.Listen("tcp", fmt.Sprintf(":%d", domain.Env.Port), cfg)
	if err != nil {
		return servers.New(), fmt.Errorf("get TLS listener: %w", err)
	}

	return servers.WrapListener(&http.Server{ReadHeaderTimeout: time.Second * 15}, listener), nil
}

func tlsConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load cert/key files: %w", err)
	}

	config := tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	return &config, nil
}
