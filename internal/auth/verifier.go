package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNotConfigured indica que faltan credenciales de Firebase Admin; los
// endpoints autenticados responden error de configuración en vez de caerse.
var ErrNotConfigured = errors.New("firebase admin credentials are not configured")

// User es la identidad resuelta por el proveedor.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Verifier valida un bearer token contra el proveedor de identidad. Una
// única llamada bloqueante por request, sin reintentos.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*User, error)
}

// FirebaseVerifier delega la verificación en Firebase Admin.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier arma el service account en memoria a partir de las
// tres credenciales de entorno. Las secuencias \n escapadas de la private
// key se restauran (vienen así en los .env de una sola línea).
func NewFirebaseVerifier(ctx context.Context, projectID, clientEmail, privateKey string) (*FirebaseVerifier, error) {
	if projectID == "" || clientEmail == "" || privateKey == "" {
		return nil, ErrNotConfigured
	}

	serviceAccount, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"client_email": clientEmail,
		"private_key":  strings.ReplaceAll(privateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsJSON(serviceAccount))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify valida el ID token y extrae {uid, email, name}.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user := &User{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.Name = name
	}

	return user, nil
}
