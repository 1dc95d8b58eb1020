package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the global flags from args and returns the remaining
// arguments (the subcommand and its own arguments).
//
// Flags:
//
//	-a             local HTTP API address in format [host]:[port]
//	-driver        storage driver: memory, sqlite, postgres, bolt
//	-dsn           storage DSN or file path
//	-c/-config     json file path with configs
//	-pepper        verifier pepper
//	-cipher        vault cipher: aes-256-gcm, xchacha20-poly1305
//	-seed          populate a new vault with sample records
//	-master-user   master profile username
//	-master-hash   master profile password verifier
//	-sync-url      remote dataset URL
//	-sync-file     local dataset file
//	-push-url      push target URL
//	-sync-interval background push interval (e.g. "5m")
//	-request-timeout HTTP request timeout (e.g. "10s")
//	-log-level     log level
//	-log-file      log file path
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	fs := flag.NewFlagSet("onelock", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		serverAddress  NetAddress
		jsonConfigPath string
		requestTimeout time.Duration
		cfg            StructuredConfig
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.Driver, "driver", "", "Storage driver")
	fs.StringVar(&cfg.Storage.DSN, "dsn", "", "Storage DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.EnvFilePath, "env-file", "", "Dotenv file path")
	fs.StringVar(&cfg.App.Pepper, "pepper", "", "Verifier pepper")
	fs.StringVar(&cfg.App.Cipher, "cipher", "", "Vault cipher")
	fs.BoolVar(&cfg.App.SeedTemplates, "seed", false, "Populate a new vault with sample records")
	fs.StringVar(&cfg.MasterUser.Username, "master-user", "", "Master profile username")
	fs.StringVar(&cfg.MasterUser.PasswordHash, "master-hash", "", "Master profile password verifier")
	fs.StringVar(&cfg.Sync.RemoteURL, "sync-url", "", "Remote dataset URL")
	fs.StringVar(&cfg.Sync.DatasetFile, "sync-file", "", "Local dataset file")
	fs.StringVar(&cfg.Sync.PushURL, "push-url", "", "Push target URL")
	fs.DurationVar(&cfg.Sync.Interval, "sync-interval", 0, "Background push interval (e.g., 5m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.JSONFilePath = jsonConfigPath

	return &cfg, fs.Args(), nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
