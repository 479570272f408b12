package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Quest     QuestConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string

	MaxLimit     int
	DefaultLimit int
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type QuestConfigs struct {
	// IDLength is the length of the user-facing quest identifier.
	IDLength uint

	// AcceptCooldown is how long a user must wait after a rejected attempt
	// before accepting the same quest again.
	AcceptCooldown time.Duration
}
