package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/auth"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/config"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/utils"
)

// Утилита для локальной разработки: выписывает JWT с нужной ролью,
// чтобы дергать admin/driver endpoints без identity-сервиса.
func main() {
	accountID := flag.String("account-id", "", "account id (random UUID if empty)")
	email := flag.String("email", "dev@tuktik.local", "account email")
	role := flag.String("role", model.RoleAdmin, "CUSTOMER|DRIVER|ADMIN|OPERATOR")
	flag.Parse()

	switch *role {
	case model.RoleCustomer, model.RoleDriver, model.RoleAdmin, model.RoleOperator:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown role %q\n", *role)
		os.Exit(1)
	}

	id := *accountID
	if id == "" {
		id = utils.NewUUID()
	}

	cfg := config.Load()
	jwtService := auth.NewJWTService(cfg.JWT)

	token, err := jwtService.GenerateToken(id, *email, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account ID: %s\n", id)
	fmt.Printf("Email:      %s\n", *email)
	fmt.Printf("Role:       %s\n", *role)
	fmt.Printf("Expires in: %d minutes\n\n", cfg.JWT.ExpiryMinutes)
	fmt.Println(token)
}
