package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func NewDatabase() (*Database, error) {
	username, err := lookup("postgres.user")
	if err != nil {
		return nil, err
	}

	password, err := secret("postgres.password")
	if err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}

	host, err := lookup("postgres.host")
	if err != nil {
		return nil, err
	}

	if _, err := lookup("postgres.port"); err != nil {
		return nil, err
	}
	port := v.GetUint16("postgres.port")
	if port == 0 {
		return nil, fmt.Errorf("invalid port %q", v.GetString("postgres.port"))
	}

	dbName, err := lookup("postgres.db")
	if err != nil {
		return nil, err
	}

	sslMode, err := lookup("postgres.sslmode")
	if err != nil {
		return nil, err
	}

	return &Database{
		Username: username,
		Password: strings.TrimSpace(string(password)),
		Host:     host,
		Port:     port,
		DBName:   dbName,
		SSLMode:  sslMode,
	}, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username,
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

func (c Database) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}
