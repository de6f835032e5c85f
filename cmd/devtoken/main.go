// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/auth"
	"github.com/carterperez-dev/lifehacking-api/internal/config"
)

// devtoken creates a local ES256 key pair and signs identity tokens with it
// so the API can be exercised without an external identity provider.
func main() {
	var (
		genKeys    = flag.Bool("genkeys", false, "generate a new key pair and exit")
		privateKey = flag.String("private-key", "keys/private.pem", "path to the private key")
		publicKey  = flag.String("public-key", "keys/public.pem", "path to the public key")
		issuer     = flag.String("issuer", "lifehacking-api", "token issuer")
		audience   = flag.String("audience", "lifehacking-api", "token audience")
		subject    = flag.String("sub", "", "subject of the issued token")
		email      = flag.String("email", "", "email claim")
		name       = flag.String("name", "", "name claim")
		expire     = flag.Duration("expire", time.Hour, "token lifetime")
	)
	flag.Parse()

	if err := run(*genKeys, *privateKey, *publicKey, config.AuthConfig{
		PrivateKeyPath: *privateKey,
		Issuer:         *issuer,
		Audience:       *audience,
		TokenExpire:    *expire,
	}, auth.Identity{
		Subject: *subject,
		Email:   *email,
		Name:    *name,
	}); err != nil {
		slog.Error("devtoken failed", "error", err)
		os.Exit(1)
	}
}

func run(
	genKeys bool,
	privateKeyPath, publicKeyPath string,
	cfg config.AuthConfig,
	identity auth.Identity,
) error {
	if genKeys {
		if err := auth.GenerateKeyPair(privateKeyPath, publicKeyPath); err != nil {
			return err
		}
		slog.Info("key pair written",
			"private_key", privateKeyPath,
			"public_key", publicKeyPath,
		)
		return nil
	}

	if identity.Subject == "" {
		return fmt.Errorf("-sub is required")
	}

	issuer, err := auth.NewIssuer(cfg)
	if err != nil {
		return err
	}

	token, err := issuer.CreateAccessToken(identity)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
