package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/coinfeed/internal/config"
)

// ApplicationName is reported to Postgres as application_name.
const ApplicationName = "coinfeed"

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.DBConfig) string {
	userInfo := url.User(cfg.User)
	if cfg.Password != "" {
		userInfo = url.UserPassword(cfg.User, cfg.Password)
	}

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Name,
		RawQuery: url.Values{
			"sslmode":          []string{sslMode},
			"application_name": []string{ApplicationName},
		}.Encode(),
	}
	return u.String()
}
