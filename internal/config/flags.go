package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a backend address in format [host]:[port]
//	-d local database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-t bearer token for backend requests
//	-u owning user id
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval background sync interval (e.g., "5m")
//	-ping-interval connectivity probe interval (e.g., "10s")
func ParseFlags() *StructuredConfig {
	var backendAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var token string
	var userID int64
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var pingInterval time.Duration

	flag.Var(&backendAddress, "a", "Backend net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&token, "t", "", "Bearer token")
	flag.Int64Var(&userID, "u", 0, "Owning user id")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.DurationVar(&pingInterval, "ping-interval", 0, "Connectivity probe interval (e.g., 10s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Token:  token,
			UserID: userID,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    backendAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			PingInterval: pingInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
