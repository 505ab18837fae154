// cmd/gentoken/main.go: issues a development bearer token signed with
// JWT_SECRET, shaped like the ones the main backend issues.
// Uso: go run ./cmd/gentoken -user juan -rol administrador -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"posmejia/internal/config"
	"posmejia/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	user := flag.String("user", "admin", "username claim")
	rol := flag.String("rol", "administrador", "rol claim")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:   "dev-" + *user,
		Username: *user,
		Rol:      *rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
