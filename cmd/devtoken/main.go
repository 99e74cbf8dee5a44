// Command devtoken prints a signed bearer token for local testing. Users are
// managed by another service, so this is the only way to call the API locally.
//
//	go run ./cmd/devtoken -user 3f0c... -roles admin
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"eventadmission/config"
	"eventadmission/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "user id placed in the token subject (required)")
	roles := flag.String("roles", "", "comma-separated roles, e.g. admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, roleList, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
