package config

import (
	"fmt"
	"strconv"
	"strings"
)

// NetworkAddress представляет адрес HTTP сервера в формате host:port
type NetworkAddress struct {
	Host string
	Port int
}

func (a NetworkAddress) String() string {
	return a.Host + ":" + strconv.Itoa(a.Port)
}

func (a *NetworkAddress) Set(value string) error {
	host, portStr, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("invalid network address format: %s", value)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}

	a.Host = host
	a.Port = port

	return nil
}

func (a *NetworkAddress) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}
